package request

import (
	"maps"
	"net/url"
	"strings"

	"github.com/kolah/synth/model"
)

// URLInput is everything that shapes the request URL.
type URLInput struct {
	Server        *model.Server
	Path          string
	PathVariables map[string]string
	Env           map[string]string
	Query         *Query
}

// ResolveURL substitutes server variables, path variables and environment placeholders,
// joins server and path and merges the query strings of server, path and parameters.
// Later query sources replace a key wholesale. It returns ErrEmptyURL when the result
// has no content.
func ResolveURL(in URLInput) (string, error) {
	serverURL := ""
	if in.Server != nil {
		serverURL = ReplaceVariables(in.Server.URL, serverVariables(in.Server, in.Env))
	}

	escaped := make(map[string]string, len(in.PathVariables))
	for name, v := range in.PathVariables {
		escaped[name] = encodeComponent(v)
	}
	path := ReplaceVariables(ReplaceVariables(in.Path, escaped), in.Env)

	serverBase, serverQuery := splitQuery(serverURL)
	pathBase, pathQuery := splitQuery(path)

	base := combineURLAndPath(serverBase, pathBase)
	if strings.TrimSpace(base) == "" && serverQuery == "" && pathQuery == "" {
		return "", ErrEmptyURL
	}

	query := ParseQuery(serverQuery)
	query.Merge(ParseQuery(pathQuery))
	query.Merge(in.Query)
	if query.Len() == 0 {
		return base, nil
	}
	return base + "?" + query.Encode(), nil
}

// serverVariables returns the environment overlaid on the server variable defaults.
func serverVariables(server *model.Server, env map[string]string) map[string]string {
	if len(server.Variables) == 0 {
		return env
	}
	vars := make(map[string]string, len(server.Variables)+len(env))
	for _, v := range server.Variables {
		vars[v.Name] = v.Default
	}
	maps.Copy(vars, env)
	return vars
}

// combineURLAndPath joins a server URL and a path with exactly one slash.
func combineURLAndPath(server, path string) string {
	if server == "" {
		return path
	}
	if path == "" {
		return server
	}
	return strings.TrimSuffix(server, "/") + "/" + strings.TrimPrefix(path, "/")
}

func splitQuery(s string) (string, string) {
	base, query, _ := strings.Cut(s, "?")
	return base, query
}

var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeComponent escapes everything except A-Z a-z 0-9 and -_.!~*'() so a path
// variable value cannot introduce URL delimiters.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
