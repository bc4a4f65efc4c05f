package request

import (
	"bytes"
	"strconv"

	"github.com/google/uuid"

	"github.com/kolah/synth/model"
)

// Fingerprint identifies the wire content of the assembly. Identical assemblies share
// a fingerprint.
func (a *Assembly) Fingerprint() uuid.UUID {
	var buf bytes.Buffer
	buf.WriteString(a.Method)
	buf.WriteByte('\n')
	buf.WriteString(a.URL)
	buf.WriteByte('\n')
	for _, h := range a.Headers.Entries() {
		writeField(&buf, h.Name, h.Value)
	}
	if a.Cookie != nil {
		writeField(&buf, a.Cookie.Name, a.Cookie.Value)
	}
	buf.WriteByte('\n')
	writeBody(&buf, a.Body)
	return uuid.NewSHA1(uuid.NameSpaceURL, buf.Bytes())
}

func writeField(buf *bytes.Buffer, name, value string) {
	buf.WriteString(strconv.Quote(name))
	buf.WriteByte(':')
	buf.WriteString(strconv.Quote(value))
	buf.WriteByte('\n')
}

func writeBody(buf *bytes.Buffer, body Body) {
	switch b := body.(type) {
	case RawBody:
		buf.WriteString("raw\n")
		buf.WriteString(b.Text)
	case ScalarBody:
		buf.WriteString("scalar\n")
		buf.WriteString(b.Value.Kind().String())
		buf.WriteByte(':')
		buf.WriteString(b.Value.String())
	case URLEncodedBody:
		buf.WriteString("urlencoded\n")
		writeFormFields(buf, b.Fields)
	case MultipartBody:
		buf.WriteString("multipart\n")
		writeFormFields(buf, b.Fields)
	}
}

func writeFormFields(buf *bytes.Buffer, fields []FormField) {
	for _, f := range fields {
		writeField(buf, f.Name, f.Value)
		if f.File != nil {
			writeFile(buf, f.File)
		}
	}
}

func writeFile(buf *bytes.Buffer, f *model.File) {
	writeField(buf, f.Name, f.MimeType)
	buf.WriteString(strconv.Itoa(len(f.Content)))
	buf.WriteByte('\n')
	buf.Write(f.Content)
	buf.WriteByte('\n')
}
