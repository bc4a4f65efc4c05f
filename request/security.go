package request

import (
	"encoding/base64"

	"github.com/kolah/synth/model"
)

// EmptyTokenPlaceholder is written in place of a missing credential.
const EmptyTokenPlaceholder = "YOUR_SECRET_TOKEN"

// SecurityFragments collects what security schemes contribute to a request.
type SecurityFragments struct {
	Headers *Headers
	Cookies []model.Cookie
	Query   *Query
}

// ApplySecurity turns the selected schemes, in order, into header, cookie and query
// contributions. Later schemes overwrite same-name headers of earlier ones.
func ApplySecurity(schemes []model.Ref[model.SecurityScheme], env map[string]string, placeholder string) SecurityFragments {
	out := SecurityFragments{Headers: NewHeaders(), Query: &Query{}}
	for _, ref := range schemes {
		switch s := ref.Resolve().(type) {
		case model.APIKeyScheme:
			applyAPIKey(&out, s, env, placeholder)
		case model.HTTPScheme:
			applyHTTP(&out, s, env, placeholder)
		case model.OAuth2Scheme:
			applyOAuth2(&out, s, env, placeholder)
		case model.OpenIDConnectScheme:
			out.Headers.Set("Authorization", "Bearer "+tokenOr(ReplaceVariables(s.Token, env), placeholder))
		}
	}
	return out
}

func applyAPIKey(out *SecurityFragments, s model.APIKeyScheme, env map[string]string, placeholder string) {
	name := ReplaceVariables(s.Name, env)
	value := tokenOr(ReplaceVariables(s.Token, env), placeholder)
	switch s.In {
	case model.LocationHeader:
		out.Headers.Set(name, value)
	case model.LocationQuery:
		out.Query.Append(name, value)
	case model.LocationCookie:
		out.Cookies = append(out.Cookies, model.Cookie{Name: name, Value: value, Path: "/"})
	}
}

func applyHTTP(out *SecurityFragments, s model.HTTPScheme, env map[string]string, placeholder string) {
	if !s.IsBasic() {
		out.Headers.Set("Authorization", "Bearer "+tokenOr(ReplaceVariables(s.Token, env), placeholder))
		return
	}
	username := ReplaceVariables(s.Username, env)
	password := ReplaceVariables(s.Password, env)
	if username == "" && password == "" {
		out.Headers.Set("Authorization", "Basic username:password")
		return
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	out.Headers.Set("Authorization", "Basic "+encoded)
}

// applyOAuth2 uses the first flow holding a token.
func applyOAuth2(out *SecurityFragments, s model.OAuth2Scheme, env map[string]string, placeholder string) {
	token := ""
	for _, flow := range s.Flows {
		if t := ReplaceVariables(flow.Token, env); t != "" {
			token = t
			break
		}
	}
	out.Headers.Set("Authorization", "Bearer "+tokenOr(token, placeholder))
}

func tokenOr(token, placeholder string) string {
	if token == "" {
		return placeholder
	}
	return token
}
