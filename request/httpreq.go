package request

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// HTTPRequest converts the assembly into an *http.Request bound to the assembly context.
// Structured bodies are encoded here and get their Content-Type, including the
// multipart boundary.
func (a *Assembly) HTTPRequest() (*http.Request, error) {
	payload, contentType, err := a.encodeBody()
	if err != nil {
		return nil, fmt.Errorf("encoding body: %w", err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(a.ctx, a.Method, a.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for _, h := range a.Headers.Entries() {
		req.Header.Set(h.Name, h.Value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if a.Cookie != nil {
		req.Header.Set(a.Cookie.Name, a.Cookie.Value)
	}
	return req, nil
}

// encodeBody returns the wire bytes of the body and, for structured bodies, the
// Content-Type to send with them.
func (a *Assembly) encodeBody() ([]byte, string, error) {
	switch b := a.Body.(type) {
	case nil:
		return nil, "", nil
	case RawBody:
		return []byte(b.Text), "", nil
	case ScalarBody:
		return []byte(b.Value.String()), "", nil
	case URLEncodedBody:
		return []byte(encodeFields(b.Fields)), ContentTypeURLEncoded, nil
	case MultipartBody:
		return encodeMultipart(b.Fields, "synth-"+a.Fingerprint().String())
	}
	return nil, "", fmt.Errorf("unsupported body %T", a.Body)
}

func encodeFields(fields []FormField) string {
	q := &Query{}
	for _, f := range fields {
		q.Append(f.Name, f.Value)
	}
	return q.Encode()
}

func encodeMultipart(fields []FormField, boundary string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", err
	}

	for _, f := range fields {
		if f.File == nil {
			if err := w.WriteField(f.Name, f.Value); err != nil {
				return nil, "", err
			}
			continue
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(f.Name), escapeQuotes(f.File.Name)))
		mimeType := f.File.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		header.Set("Content-Type", mimeType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.File.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
