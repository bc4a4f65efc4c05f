package model

import "strings"

// Document is the engine-facing view of an OpenAPI document.
type Document struct {
	Info            Info
	Servers         []Server
	Operations      []*Operation
	SecuritySchemes []NamedSecurityScheme
	Security        []SecurityRequirement
}

type Info struct {
	Title       string
	Version     string
	Description string
}

type Server struct {
	URL         string
	Description string
	Variables   []ServerVariable
}

type ServerVariable struct {
	Name        string
	Default     string
	Enum        []string
	Description string
}

// FindOperation looks an operation up by operationId or by "METHOD /path".
func (d *Document) FindOperation(selector string) (*Operation, bool) {
	selector = strings.TrimSpace(selector)
	for _, op := range d.Operations {
		if op.ID != "" && op.ID == selector {
			return op, true
		}
	}
	method, path, ok := strings.Cut(selector, " ")
	if !ok {
		return nil, false
	}
	path = strings.TrimSpace(path)
	for _, op := range d.Operations {
		if strings.EqualFold(string(op.Method), method) && op.Path == path {
			return op, true
		}
	}
	return nil, false
}

// FindSecurityScheme returns the component security scheme registered under name.
func (d *Document) FindSecurityScheme(name string) (Ref[SecurityScheme], bool) {
	for _, s := range d.SecuritySchemes {
		if s.Name == name {
			return s.Scheme, true
		}
	}
	return Ref[SecurityScheme]{}, false
}

// EffectiveSecurity returns the operation requirements, or the document defaults when
// the operation declares none.
func (d *Document) EffectiveSecurity(op *Operation) []SecurityRequirement {
	if op.Security != nil {
		return op.Security
	}
	return d.Security
}

// EffectiveServers returns the operation servers, or the document servers when the
// operation declares none.
func (d *Document) EffectiveServers(op *Operation) []Server {
	if len(op.Servers) > 0 {
		return op.Servers
	}
	return d.Servers
}
