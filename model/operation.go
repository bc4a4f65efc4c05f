package model

import "strings"

type Operation struct {
	ID          string
	Method      Method
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	Security    []SecurityRequirement
	Servers     []Server
	Deprecated  bool

	// Per example key, names of default headers and global cookies the user switched off
	// (x-scalar-disable-parameters).
	DisabledDefaultHeaders map[string]map[string]bool
	DisabledGlobalCookies  map[string]map[string]bool
}

// Selector returns the "METHOD /path" form used to address an operation without an ID.
func (o *Operation) Selector() string {
	return string(o.Method) + " " + o.Path
}

// DefaultHeaderDisabled reports whether the named default header is switched off for the example.
func (o *Operation) DefaultHeaderDisabled(exampleKey, name string) bool {
	return lookupFold(o.DisabledDefaultHeaders[exampleKey], name)
}

func lookupFold(m map[string]bool, name string) bool {
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return false
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodQuery   Method = "QUERY" // OpenAPI 3.2
)

// AllowsBody reports whether requests with this method conventionally carry a body.
func (m Method) AllowsBody() bool {
	switch Method(strings.ToUpper(string(m))) {
	case MethodGet, MethodHead, MethodOptions:
		return false
	}
	return true
}

type Location string

const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
)

type Style string

const (
	StyleSimple         Style = "simple"
	StyleForm           Style = "form"
	StyleSpaceDelimited Style = "spaceDelimited"
	StylePipeDelimited  Style = "pipeDelimited"
	StyleDeepObject     Style = "deepObject"
)

type Parameter struct {
	Name        string
	In          Location
	Description string
	Required    bool
	Deprecated  bool
	Style       Style
	Explode     *bool
	Examples    Examples

	// Content is set for content-based parameters; it replaces Style and Explode.
	Content []MediaType
}

// IsContentBased reports whether the parameter declares its value through a media type map.
func (p *Parameter) IsContentBased() bool {
	return len(p.Content) > 0
}

// MediaType returns the media type entry for contentType, or the first declared one when
// contentType is empty.
func (p *Parameter) MediaType(contentType string) (MediaType, bool) {
	return findMediaType(p.Content, contentType)
}

type RequestBody struct {
	Description string
	Required    bool
	Content     []MediaType

	// SelectedContentType maps an example key to the content type the user picked
	// (x-scalar-selected-content-type).
	SelectedContentType map[string]string
}

// MediaType returns the media type entry for contentType, or the first declared one when
// contentType is empty.
func (b *RequestBody) MediaType(contentType string) (MediaType, bool) {
	return findMediaType(b.Content, contentType)
}

type MediaType struct {
	Type     string
	Examples Examples
}

func findMediaType(content []MediaType, contentType string) (MediaType, bool) {
	if len(content) == 0 {
		return MediaType{}, false
	}
	if contentType == "" {
		return content[0], true
	}
	for _, mt := range content {
		if mt.Type == contentType {
			return mt, true
		}
	}
	return MediaType{}, false
}

// Example is one named value variant of a parameter or body.
type Example struct {
	Summary string
	Value   Value

	// Disabled mirrors x-disabled. nil means the author did not say.
	Disabled *bool
}

// NamedExample pairs an example key with a possibly indirect example.
type NamedExample struct {
	Key     string
	Example Ref[Example]
}

// Examples keeps named examples in declaration order.
type Examples []NamedExample

// Get returns the example stored under key.
func (e Examples) Get(key string) (Ref[Example], bool) {
	for _, ne := range e {
		if ne.Key == key {
			return ne.Example, true
		}
	}
	return Ref[Example]{}, false
}

// Keys returns the example keys in declaration order.
func (e Examples) Keys() []string {
	keys := make([]string, 0, len(e))
	for _, ne := range e {
		keys = append(keys, ne.Key)
	}
	return keys
}

// SecurityRequirement lists schemes that must all be satisfied together.
type SecurityRequirement struct {
	Schemes []SchemeScopes
}

type SchemeScopes struct {
	Name   string
	Scopes []string
}

// NamedExamples returns the schema-based examples of the parameter.
func (p *Parameter) NamedExamples() Examples {
	return p.Examples
}

// IsContentBased is always true for a request body.
func (b *RequestBody) IsContentBased() bool {
	return true
}

func (b *RequestBody) NamedExamples() Examples {
	return nil
}
