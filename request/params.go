package request

import (
	"maps"
	"slices"
	"strings"

	"github.com/kolah/synth/model"
)

// ParameterFragments collects what operation parameters contribute to a request.
type ParameterFragments struct {
	Headers       *Headers
	Cookies       []model.Cookie
	PathVariables map[string]string
	Query         *Query
}

func newParameterFragments() ParameterFragments {
	return ParameterFragments{
		Headers:       NewHeaders(),
		PathVariables: map[string]string{},
		Query:         &Query{},
	}
}

func (f ParameterFragments) clone() ParameterFragments {
	return ParameterFragments{
		Headers:       f.Headers.clone(),
		Cookies:       slices.Clone(f.Cookies),
		PathVariables: maps.Clone(f.PathVariables),
		Query:         f.Query.clone(),
	}
}

// SerializeParameters folds the parameters, in declaration order, into header, cookie,
// path and query fragments.
func SerializeParameters(params []model.Parameter, env map[string]string, exampleKey string) ParameterFragments {
	acc := newParameterFragments()
	for i := range params {
		acc = foldParameter(acc, &params[i], env, exampleKey)
	}
	return acc
}

// foldParameter returns a new accumulator with param applied. acc is not modified.
func foldParameter(acc ParameterFragments, param *model.Parameter, env map[string]string, exampleKey string) ParameterFragments {
	example, ok := ResolveExample(param, exampleKey, "")
	if !ok || !IsParameterEnabled(param, example) {
		return acc
	}

	value := example.Value
	if value.Kind() == model.KindString {
		value = model.String(ReplaceVariables(value.Text(), env))
	}
	name := ReplaceVariables(param.Name, env)

	next := acc.clone()
	switch param.In {
	case model.LocationHeader:
		serialized := serializeSimple(value, explodeOr(param, false))
		if strings.EqualFold(name, "Content-Type") && serialized == "multipart/form-data" {
			return acc
		}
		next.Headers.Add(name, serialized)
	case model.LocationPath:
		next.PathVariables[name] = serializeSimple(value, explodeOr(param, false))
	case model.LocationQuery:
		appendQuery(next.Query, param, name, model.DecodeStringified(value))
	case model.LocationCookie:
		for _, e := range serializeFormForCookies(value, explodeOr(param, true)) {
			next.Cookies = append(next.Cookies, model.Cookie{Name: keyOr(e.key, name), Value: e.value, Path: "/"})
		}
	default:
		return acc
	}
	return next
}

func appendQuery(q *Query, param *model.Parameter, name string, value model.Value) {
	if param.IsContentBased() {
		q.Set(name, serializeContent(value, param.Content[0].Type))
		return
	}

	style := queryStyle(param, value)
	explode := explodeOr(param, style == model.StyleForm || style == model.StyleDeepObject)
	if param.Style == model.StyleDeepObject {
		// deepObject always explodes, including the form fallback for non-objects.
		explode = true
	}
	switch style {
	case model.StyleDeepObject:
		if explode {
			for _, e := range serializeDeepObject(name, value) {
				q.Append(e.key, e.value)
			}
			return
		}
	case model.StyleSpaceDelimited:
		// Delimited styles join regardless of explode.
		appendDelimited(q, name, serializeSpaceDelimited(value), " ")
		return
	case model.StylePipeDelimited:
		appendDelimited(q, name, serializePipeDelimited(value), "|")
		return
	case model.StyleSimple:
		if value.Kind() == model.KindObject {
			q.Append(name, serializeSimple(value, explode))
			return
		}
	}

	for _, e := range serializeForm(value, explode) {
		q.Append(keyOr(e.key, name), e.value)
	}
}

// appendDelimited extends an existing entry for name with sep, so repeated declarations
// of the same parameter produce a single delimited value.
func appendDelimited(q *Query, name, serialized, sep string) {
	if existing, ok := q.Get(name); ok && existing != "" {
		q.Set(name, existing+sep+serialized)
		return
	}
	q.Set(name, serialized)
}

// queryStyle defaults to form. deepObject only applies to objects; other shapes fall
// back to form.
func queryStyle(param *model.Parameter, value model.Value) model.Style {
	if param.Style == "" {
		return model.StyleForm
	}
	if param.Style == model.StyleDeepObject && value.Kind() != model.KindObject {
		return model.StyleForm
	}
	return param.Style
}

func explodeOr(param *model.Parameter, def bool) bool {
	if param.Explode != nil {
		return *param.Explode
	}
	return def
}

func keyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}
