package loader

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// refIndex records which examples of the raw document were written as local $ref
// pointers. The high-level model only exposes their resolved content.
type refIndex struct {
	root     *yaml.Node
	examples map[string]string
}

func paramExampleKey(method, path, in, name, exampleKey string) string {
	return strings.Join([]string{"param", strings.ToLower(method), path, strings.ToLower(in), name, exampleKey}, "\x00")
}

func bodyExampleKey(method, path, contentType, exampleKey string) string {
	return strings.Join([]string{"body", strings.ToLower(method), path, contentType, exampleKey}, "\x00")
}

func buildRefIndex(data []byte) *refIndex {
	idx := &refIndex{examples: make(map[string]string)}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return idx
	}
	idx.root = doc.Content[0]

	paths := mappingValue(idx.root, "paths")
	if paths == nil {
		return idx
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		item := idx.deref(paths.Content[i+1])
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}
		shared := mappingValue(item, "parameters")
		for j := 0; j+1 < len(item.Content); j += 2 {
			method := item.Content[j].Value
			if !isMethod(method) {
				continue
			}
			op := idx.deref(item.Content[j+1])
			idx.indexParameters(method, path, shared)
			idx.indexParameters(method, path, mappingValue(op, "parameters"))
			idx.indexBody(method, path, idx.deref(mappingValue(op, "requestBody")))
		}
	}
	return idx
}

func (r *refIndex) indexParameters(method, path string, params *yaml.Node) {
	if params == nil || params.Kind != yaml.SequenceNode {
		return
	}
	for _, raw := range params.Content {
		p := r.deref(raw)
		name := scalarValue(mappingValue(p, "name"))
		in := scalarValue(mappingValue(p, "in"))
		r.indexExamples(mappingValue(p, "examples"), func(key string) string {
			return paramExampleKey(method, path, in, name, key)
		})
		content := mappingValue(p, "content")
		if content == nil {
			continue
		}
		for i := 0; i+1 < len(content.Content); i += 2 {
			r.indexExamples(mappingValue(r.deref(content.Content[i+1]), "examples"), func(key string) string {
				return paramExampleKey(method, path, in, name, key)
			})
		}
	}
}

func (r *refIndex) indexBody(method, path string, body *yaml.Node) {
	content := mappingValue(body, "content")
	if content == nil {
		return
	}
	for i := 0; i+1 < len(content.Content); i += 2 {
		contentType := content.Content[i].Value
		r.indexExamples(mappingValue(r.deref(content.Content[i+1]), "examples"), func(key string) string {
			return bodyExampleKey(method, path, contentType, key)
		})
	}
}

func (r *refIndex) indexExamples(examples *yaml.Node, key func(string) string) {
	if examples == nil || examples.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(examples.Content); i += 2 {
		if ref := scalarValue(mappingValue(examples.Content[i+1], "$ref")); ref != "" {
			r.examples[key(examples.Content[i].Value)] = ref
		}
	}
}

// pointer returns the $ref an example was written as, if any.
func (r *refIndex) pointer(key string) string {
	if r == nil {
		return ""
	}
	return r.examples[key]
}

// mappingKeys returns the keys of the mapping found at pointer in source order, following
// local references along the way.
func (r *refIndex) mappingKeys(pointer string, path ...string) []string {
	if r == nil {
		return nil
	}
	node := r.deref(r.resolve(pointer))
	for _, key := range path {
		node = r.deref(mappingValue(node, key))
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// deref follows local $ref pointers. Remote references are left unresolved.
func (r *refIndex) deref(node *yaml.Node) *yaml.Node {
	for range 16 {
		ref := scalarValue(mappingValue(node, "$ref"))
		if ref == "" {
			return node
		}
		target := r.resolve(ref)
		if target == nil {
			return node
		}
		node = target
	}
	return node
}

// resolve looks up a local JSON pointer such as "#/components/examples/Pet".
func (r *refIndex) resolve(pointer string) *yaml.Node {
	rest, ok := strings.CutPrefix(pointer, "#")
	if !ok || r.root == nil {
		return nil
	}
	node := r.root
	for _, token := range strings.Split(strings.TrimPrefix(rest, "/"), "/") {
		if token == "" {
			continue
		}
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch node.Kind {
		case yaml.MappingNode:
			node = mappingValue(node, token)
		case yaml.SequenceNode:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node.Content) {
				return nil
			}
			node = node.Content[i]
		default:
			return nil
		}
		if node == nil {
			return nil
		}
	}
	return node
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func isMethod(key string) bool {
	switch strings.ToLower(key) {
	case "get", "put", "post", "delete", "options", "head", "patch", "trace", "query":
		return true
	}
	return false
}
