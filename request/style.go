package request

import (
	"strings"

	"github.com/kolah/synth/model"
)

// entry is one serialized key/value pair. An empty key stands for the parameter name.
type entry struct {
	key   string
	value string
}

func joinItems(items []model.Value, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if item.IsNull() {
			continue
		}
		parts[i] = item.String()
	}
	return strings.Join(parts, sep)
}

// serializeSimple renders a value in simple style.
func serializeSimple(v model.Value, explode bool) string {
	switch v.Kind() {
	case model.KindList:
		return joinItems(v.Items(), ",")
	case model.KindObject:
		parts := make([]string, 0, len(v.Fields())*2)
		for _, f := range v.Fields() {
			if explode {
				parts = append(parts, f.Key+"="+f.Value.String())
			} else {
				parts = append(parts, f.Key, f.Value.String())
			}
		}
		return strings.Join(parts, ",")
	}
	return v.String()
}

// serializeForm renders a value in form style. Exploded lists and objects yield one
// entry per element or key.
func serializeForm(v model.Value, explode bool) []entry {
	if !explode {
		return []entry{{value: serializeSimple(v, false)}}
	}
	switch v.Kind() {
	case model.KindList:
		out := make([]entry, 0, len(v.Items()))
		for _, item := range v.Items() {
			out = append(out, entry{value: item.String()})
		}
		return out
	case model.KindObject:
		out := make([]entry, 0, len(v.Fields()))
		for _, f := range v.Fields() {
			out = append(out, entry{key: f.Key, value: f.Value.String()})
		}
		return out
	}
	return []entry{{value: v.String()}}
}

// serializeFormForCookies is form style with recursive flattening of objects when not
// exploded.
func serializeFormForCookies(v model.Value, explode bool) []entry {
	if explode {
		return serializeForm(v, true)
	}
	switch v.Kind() {
	case model.KindList:
		parts := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			parts = append(parts, item.String())
		}
		return []entry{{value: strings.Join(parts, ",")}}
	case model.KindObject:
		return []entry{{value: strings.Join(flattenObject(v, nil), ",")}}
	}
	return []entry{{value: v.String()}}
}

func flattenObject(v model.Value, acc []string) []string {
	for _, f := range v.Fields() {
		acc = append(acc, f.Key)
		if f.Value.Kind() == model.KindObject {
			acc = flattenObject(f.Value, acc)
			continue
		}
		acc = append(acc, f.Value.String())
	}
	return acc
}

func serializeSpaceDelimited(v model.Value) string {
	return serializeDelimited(v, " ", "null")
}

func serializePipeDelimited(v model.Value) string {
	return serializeDelimited(v, "|", "")
}

// serializeDelimited joins lists and alternating object keys and values with sep.
// nullField is what a null object value renders as.
func serializeDelimited(v model.Value, sep, nullField string) string {
	switch v.Kind() {
	case model.KindList:
		return joinItems(v.Items(), sep)
	case model.KindObject:
		parts := make([]string, 0, len(v.Fields())*2)
		for _, f := range v.Fields() {
			val := nullField
			if !f.Value.IsNull() {
				val = f.Value.String()
			}
			parts = append(parts, f.Key, val)
		}
		return strings.Join(parts, sep)
	}
	return v.String()
}

// serializeDeepObject renders name[key][nested]=value entries. Non-objects yield nothing.
func serializeDeepObject(name string, v model.Value) []entry {
	if v.Kind() != model.KindObject {
		return nil
	}
	var out []entry
	for _, f := range v.Fields() {
		key := name + "[" + f.Key + "]"
		if f.Value.Kind() == model.KindObject {
			out = append(out, serializeDeepObject(key, f.Value)...)
			continue
		}
		out = append(out, entry{key: key, value: f.Value.String()})
	}
	return out
}

// serializeContent renders the value of a content-based parameter for its media type.
func serializeContent(v model.Value, contentType string) string {
	if v.Kind() == model.KindString {
		return v.Text()
	}
	if isJSONMediaType(contentType) {
		b, _ := v.MarshalJSON()
		return string(b)
	}
	switch v.Kind() {
	case model.KindObject:
		b, _ := v.MarshalJSON()
		return string(b)
	case model.KindList:
		return joinItems(v.Items(), ",")
	}
	return v.String()
}

func isJSONMediaType(contentType string) bool {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
