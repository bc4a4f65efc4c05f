package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind discriminates the shapes an example value can take.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
	KindForm
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindForm:
		return "form"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Value is an example value. The zero Value is Null.
type Value struct {
	kind   Kind
	text   string // string content or number literal
	flag   bool
	items  []Value
	fields []Field
	form   []FormEntry
	file   *File
}

// Field is one key of an object value. Objects keep declaration order.
type Field struct {
	Key   string
	Value Value
}

// FormEntry is one editor-authored form field. Value is a string or a file.
type FormEntry struct {
	Name  string
	Value Value
}

// File is an uploaded file attached to a form entry.
type File struct {
	Name     string
	Content  []byte
	MimeType string
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, text: s} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

func Int(n int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)} }

func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Number wraps a numeric literal as written in the source document.
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, items: items}
}

func Object(fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: KindObject, fields: fields}
}

func Form(entries ...FormEntry) Value {
	if entries == nil {
		entries = []FormEntry{}
	}
	return Value{kind: KindForm, form: entries}
}

func FileValue(f File) Value { return Value{kind: KindFile, file: &f} }

// F is shorthand for building object fields.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether the value is a string, number or bool.
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
}

// Text returns the raw string content of a string value or the literal of a number.
func (v Value) Text() string { return v.text }

func (v Value) BoolValue() bool { return v.flag }

func (v Value) Items() []Value { return v.items }

func (v Value) Fields() []Field { return v.fields }

func (v Value) FormEntries() []FormEntry { return v.form }

func (v Value) File() *File { return v.file }

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// String coerces the value to text the way query and header serialization needs it:
// scalars print as-is, null prints "null", lists join their elements with commas
// (null elements become empty), objects and forms print as JSON and files by name.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			if item.IsNull() {
				continue
			}
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindFile:
		return v.file.Name
	}
	b, _ := v.MarshalJSON()
	return string(b)
}

// MarshalJSON writes the value as JSON, keeping object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		return writeJSONString(buf, v.text)
	case KindNumber:
		if !json.Valid([]byte(v.text)) {
			return writeJSONString(buf, v.text)
		}
		buf.WriteString(v.text)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.flag))
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindForm:
		buf.WriteByte('[')
		for i, e := range v.form {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"name":`)
			if err := writeJSONString(buf, e.Name); err != nil {
				return err
			}
			buf.WriteString(`,"value":`)
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
			buf.WriteByte('}')
		}
		buf.WriteByte(']')
	case KindFile:
		return writeJSONString(buf, v.file.Name)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
