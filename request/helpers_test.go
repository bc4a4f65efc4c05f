package request

import (
	"context"

	"github.com/kolah/synth/model"
)

func boolPtr(b bool) *bool {
	return &b
}

type paramOption func(*model.Parameter)

func withStyle(style model.Style) paramOption {
	return func(p *model.Parameter) { p.Style = style }
}

func withExplode(explode bool) paramOption {
	return func(p *model.Parameter) { p.Explode = boolPtr(explode) }
}

func required() paramOption {
	return func(p *model.Parameter) { p.Required = true }
}

// param builds a parameter whose "default" example holds value and is explicitly enabled.
func param(name string, in model.Location, value model.Value, opts ...paramOption) model.Parameter {
	p := model.Parameter{
		Name: name,
		In:   in,
		Examples: model.Examples{
			{Key: "default", Example: model.Direct(model.Example{Value: value, Disabled: boolPtr(false)})},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func strs(values ...string) model.Value {
	items := make([]model.Value, len(values))
	for i, v := range values {
		items[i] = model.String(v)
	}
	return model.List(items...)
}

func jsonBody(contentType string, value model.Value) *model.RequestBody {
	return &model.RequestBody{
		Content: []model.MediaType{{
			Type:     contentType,
			Examples: model.Examples{{Key: "default", Example: model.Direct(model.Example{Value: value})}},
		}},
	}
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}
