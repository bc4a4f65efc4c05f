package request

import (
	"strings"

	"github.com/kolah/synth/model"
)

// DefaultHeader is a header the request carries unless something overrides it.
type DefaultHeader struct {
	Name       string
	Value      string
	Overridden bool
}

// DefaultHeadersFunc produces the default headers of an operation.
type DefaultHeadersFunc func(method model.Method, op *model.Operation, exampleKey string) []DefaultHeader

// StandardDefaultHeaders sends the selected body content type and Accept: */*. A default
// is overridden by a header parameter of the same name or by the operation switching it
// off for the example.
func StandardDefaultHeaders(method model.Method, op *model.Operation, exampleKey string) []DefaultHeader {
	var headers []DefaultHeader
	if method.AllowsBody() && op.RequestBody != nil {
		headers = append(headers, DefaultHeader{Name: "Content-Type", Value: SelectContentType(op.RequestBody, exampleKey)})
	}
	headers = append(headers, DefaultHeader{Name: "Accept", Value: "*/*"})

	for i := range headers {
		headers[i].Overridden = hasHeaderParameter(op, headers[i].Name) || op.DefaultHeaderDisabled(exampleKey, headers[i].Name)
	}
	return headers
}

func hasHeaderParameter(op *model.Operation, name string) bool {
	for _, p := range op.Parameters {
		if p.In == model.LocationHeader && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// ExecutionContext describes where the assembled request will be sent from.
type ExecutionContext interface {
	IsEmbeddedClient() bool
}

// StaticContext is an ExecutionContext with a fixed answer.
type StaticContext bool

func (c StaticContext) IsEmbeddedClient() bool { return bool(c) }
