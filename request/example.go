package request

import "github.com/kolah/synth/model"

// ExampleOwner is a parameter or request body carrying named examples.
type ExampleOwner interface {
	IsContentBased() bool
	MediaType(contentType string) (model.MediaType, bool)
	NamedExamples() model.Examples
}

// ResolveExample returns the example stored under exampleKey. Content-based owners look
// the key up under contentType, or under their first media type when contentType is
// empty. A reference resolves to its inlined payload. Null values count as absent.
func ResolveExample(owner ExampleOwner, exampleKey, contentType string) (model.Example, bool) {
	var examples model.Examples
	if owner.IsContentBased() {
		mt, ok := owner.MediaType(contentType)
		if !ok {
			return model.Example{}, false
		}
		examples = mt.Examples
	} else {
		examples = owner.NamedExamples()
	}

	ref, ok := examples.Get(exampleKey)
	if !ok {
		return model.Example{}, false
	}
	example := ref.Resolve()
	if example.Value.IsNull() {
		return model.Example{}, false
	}
	return example, true
}

// IsParameterEnabled decides whether a resolved example is sent. Required parameters
// are sent unless the example is explicitly disabled; optional parameters only when it
// is explicitly enabled.
func IsParameterEnabled(param *model.Parameter, example model.Example) bool {
	if example.Disabled != nil && *example.Disabled {
		return false
	}
	if param.Required {
		return true
	}
	return example.Disabled != nil
}

func isBodyExampleEnabled(example model.Example) bool {
	return example.Disabled == nil || !*example.Disabled
}
