package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// FromNode converts a YAML/JSON node into a Value, keeping mapping key order.
func FromNode(node *yaml.Node) Value {
	if node == nil {
		return Null()
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null()
		}
		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			items = append(items, FromNode(c))
		}
		return List(items...)
	case yaml.MappingNode:
		fields := make([]Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			fields = append(fields, Field{Key: node.Content[i].Value, Value: FromNode(node.Content[i+1])})
		}
		return Object(fields...)
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return Null()
		case "!!bool":
			return Bool(strings.EqualFold(node.Value, "true"))
		case "!!int", "!!float":
			return Number(node.Value)
		}
		return String(node.Value)
	}
	return Null()
}

// ParseJSON decodes a JSON document into a Value with object keys in source order.
func ParseJSON(data string) (Value, error) {
	if !json.Valid([]byte(data)) {
		return Value{}, fmt.Errorf("invalid JSON")
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(data), &node); err != nil {
		return Value{}, fmt.Errorf("decoding JSON: %w", err)
	}
	return FromNode(&node), nil
}

// DecodeStringified decodes a string value that holds a JSON array or object.
// Anything else, including malformed JSON, is returned unchanged.
func DecodeStringified(v Value) Value {
	if v.kind != KindString {
		return v
	}
	s := strings.TrimSpace(v.text)
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		return v
	}
	decoded, err := ParseJSON(s)
	if err != nil {
		return v
	}
	if decoded.kind != KindList && decoded.kind != KindObject {
		return v
	}
	return decoded
}

// AsForm reinterprets a list of {name, value} objects as form entries. The second
// result is false when the list does not have that shape.
func AsForm(v Value) (Value, bool) {
	if v.kind == KindForm {
		return v, true
	}
	if v.kind != KindList {
		return v, false
	}
	entries := make([]FormEntry, 0, len(v.items))
	for _, item := range v.items {
		if item.kind != KindObject {
			return v, false
		}
		name, ok := item.Get("name")
		if !ok {
			return v, false
		}
		val, _ := item.Get("value")
		entries = append(entries, FormEntry{Name: name.String(), Value: val})
	}
	return Form(entries...), true
}
