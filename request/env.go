package request

import (
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{\s*([^{}\s]+?)\s*\}\}|\{\s*([^{}\s]+?)\s*\}`)

// ReplaceVariables substitutes {{name}} and {name} placeholders with values from vars.
// Placeholders without a binding are left verbatim.
func ReplaceVariables(s string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(s, "{") {
		return s
	}
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := variablePattern.FindStringSubmatch(match)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if v, ok := vars[name]; ok {
			return v
		}
		return match
	})
}
