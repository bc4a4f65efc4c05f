package request

import (
	"strings"

	"github.com/kolah/synth/model"
)

const (
	ContentTypeJSON       = "application/json"
	ContentTypeMultipart  = "multipart/form-data"
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
)

// Body is one of RawBody, ScalarBody, URLEncodedBody or MultipartBody.
type Body interface {
	isBody()
}

// RawBody is a text payload.
type RawBody struct {
	Text string
}

// ScalarBody is a number or bool example passed through unencoded.
type ScalarBody struct {
	Value model.Value
}

// FormField is one field of a structured body. File is set for uploads.
type FormField struct {
	Name  string
	Value string
	File  *model.File
}

type URLEncodedBody struct {
	Fields []FormField
}

type MultipartBody struct {
	Fields []FormField
}

func (RawBody) isBody()        {}
func (ScalarBody) isBody()     {}
func (URLEncodedBody) isBody() {}
func (MultipartBody) isBody()  {}

// IsStructured reports whether the body is a field set whose Content-Type the
// transport sets itself.
func IsStructured(b Body) bool {
	switch b.(type) {
	case URLEncodedBody, MultipartBody:
		return true
	}
	return false
}

// SelectContentType returns the content type chosen for exampleKey, the first declared
// one, or application/json.
func SelectContentType(body *model.RequestBody, exampleKey string) string {
	if body == nil {
		return ""
	}
	if ct, ok := body.SelectedContentType[exampleKey]; ok && ct != "" {
		return ct
	}
	if len(body.Content) > 0 && body.Content[0].Type != "" {
		return body.Content[0].Type
	}
	return ContentTypeJSON
}

// BuildBody encodes the request body example selected by exampleKey. It returns nil
// when there is no body or no usable example.
func BuildBody(body *model.RequestBody, env map[string]string, exampleKey string) Body {
	if body == nil {
		return nil
	}
	contentType := SelectContentType(body, exampleKey)
	example, ok := ResolveExample(body, exampleKey, contentType)
	if !ok || !isBodyExampleEnabled(example) {
		return nil
	}
	value := example.Value

	multipart := hasMediaType(contentType, ContentTypeMultipart)
	urlencoded := hasMediaType(contentType, ContentTypeURLEncoded)

	if multipart || urlencoded {
		if form, ok := model.AsForm(value); ok {
			fields := formFields(form.FormEntries(), env)
			if multipart {
				return MultipartBody{Fields: fields}
			}
			return URLEncodedBody{Fields: fields}
		}
	}
	if urlencoded && value.Kind() == model.KindObject {
		return URLEncodedBody{Fields: objectFields(value, env)}
	}

	switch value.Kind() {
	case model.KindObject, model.KindList, model.KindForm:
		b, _ := value.MarshalJSON()
		return RawBody{Text: ReplaceVariables(string(b), env)}
	case model.KindString:
		return RawBody{Text: ReplaceVariables(value.Text(), env)}
	}
	return ScalarBody{Value: value}
}

func formFields(entries []model.FormEntry, env map[string]string) []FormField {
	fields := make([]FormField, 0, len(entries))
	for _, e := range entries {
		name := ReplaceVariables(e.Name, env)
		if name == "" {
			continue
		}
		switch e.Value.Kind() {
		case model.KindFile:
			f := *e.Value.File()
			fields = append(fields, FormField{Name: name, Value: f.Name, File: &f})
		case model.KindString:
			fields = append(fields, FormField{Name: name, Value: ReplaceVariables(e.Value.Text(), env)})
		case model.KindNull:
			fields = append(fields, FormField{Name: name})
		default:
			fields = append(fields, FormField{Name: name, Value: e.Value.String()})
		}
	}
	return fields
}

func objectFields(v model.Value, env map[string]string) []FormField {
	fields := make([]FormField, 0, len(v.Fields()))
	for _, f := range v.Fields() {
		if f.Value.IsNull() {
			continue
		}
		value := f.Value.String()
		if f.Value.Kind() == model.KindString {
			value = ReplaceVariables(f.Value.Text(), env)
		}
		fields = append(fields, FormField{Name: f.Key, Value: value})
	}
	return fields
}

func hasMediaType(contentType, want string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mt), want)
}
