package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/kolah/synth/request"
)

type headerView struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type fieldView struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	File     bool   `json:"file,omitempty" yaml:"file,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Size     int    `json:"size,omitempty" yaml:"size,omitempty"`
}

type bodyView struct {
	Kind   string      `json:"kind" yaml:"kind"`
	Text   string      `json:"text,omitempty" yaml:"text,omitempty"`
	Fields []fieldView `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type requestView struct {
	Method      string       `json:"method" yaml:"method"`
	URL         string       `json:"url" yaml:"url"`
	Headers     []headerView `json:"headers" yaml:"headers"`
	Cookie      *headerView  `json:"cookie,omitempty" yaml:"cookie,omitempty"`
	Body        *bodyView    `json:"body,omitempty" yaml:"body,omitempty"`
	Fingerprint string       `json:"fingerprint" yaml:"fingerprint"`
}

func newRequestView(a *request.Assembly) requestView {
	view := requestView{
		Method:      a.Method,
		URL:         a.URL,
		Headers:     []headerView{},
		Fingerprint: a.Fingerprint().String(),
	}
	for _, h := range a.Headers.Entries() {
		view.Headers = append(view.Headers, headerView{Name: h.Name, Value: h.Value})
	}
	if a.Cookie != nil {
		view.Cookie = &headerView{Name: a.Cookie.Name, Value: a.Cookie.Value}
	}

	switch b := a.Body.(type) {
	case request.RawBody:
		view.Body = &bodyView{Kind: "raw", Text: b.Text}
	case request.ScalarBody:
		view.Body = &bodyView{Kind: "scalar", Text: b.Value.String()}
	case request.URLEncodedBody:
		view.Body = &bodyView{Kind: "urlencoded", Fields: fieldViews(b.Fields)}
	case request.MultipartBody:
		view.Body = &bodyView{Kind: "multipart", Fields: fieldViews(b.Fields)}
	}
	return view
}

func fieldViews(fields []request.FormField) []fieldView {
	result := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		v := fieldView{Name: f.Name, Value: f.Value}
		if f.File != nil {
			v.File = true
			v.MimeType = f.File.MimeType
			v.Size = len(f.File.Content)
		}
		result = append(result, v)
	}
	return result
}

func render(v requestView, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "json", "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}
