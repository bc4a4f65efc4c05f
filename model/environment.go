package model

import (
	"fmt"
	"strconv"
)

// Environment holds variable bindings. Values are scalars or objects carrying a
// "default" key.
type Environment map[string]any

// Flatten renders every binding as a string.
func (e Environment) Flatten() map[string]string {
	out := make(map[string]string, len(e))
	for name, raw := range e {
		out[name] = flattenValue(raw)
	}
	return out
}

func flattenValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		if d, ok := v["default"]; ok {
			return flattenValue(d)
		}
		return ""
	case map[any]any:
		if d, ok := v["default"]; ok {
			return flattenValue(d)
		}
		return ""
	}
	return fmt.Sprint(raw)
}
