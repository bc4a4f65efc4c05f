package check

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/kolah/synth/model"
)

func credentialPresent(r *http.Request, name string, scheme model.SecurityScheme) error {
	switch s := scheme.(type) {
	case model.APIKeyScheme:
		if ExtractAPIKey(r, string(s.In), s.Name) == "" {
			return NewCredentialError(name, "missing API key")
		}
	case model.HTTPScheme:
		if s.IsBasic() {
			if _, _, ok := ExtractBasicAuth(r); !ok {
				return NewCredentialError(name, "missing basic auth credentials")
			}
			return nil
		}
		if ExtractBearerToken(r) == "" {
			return NewCredentialError(name, "missing bearer token")
		}
	case model.OAuth2Scheme:
		if ExtractBearerToken(r) == "" {
			return NewCredentialError(name, "missing access token")
		}
	case model.OpenIDConnectScheme:
		if ExtractBearerToken(r) == "" {
			return NewCredentialError(name, "missing token")
		}
	default:
		return NewCredentialError(name, "unsupported security scheme")
	}
	return nil
}

// ExtractBearerToken extracts the bearer token from the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}

// ExtractBasicAuth extracts username and password from a Basic auth header. A
// credential that is not base64 encoded is still reported as present.
func ExtractBasicAuth(r *http.Request) (username, password string, ok bool) {
	auth := r.Header.Get("Authorization")
	if len(auth) <= 6 || !strings.EqualFold(auth[:6], "Basic ") {
		return "", "", false
	}
	payload := auth[6:]
	if decoded, err := base64.StdEncoding.DecodeString(payload); err == nil {
		payload = string(decoded)
	}
	username, password, ok = strings.Cut(payload, ":")
	return username, password, ok
}

// ExtractAPIKey extracts an API key from the specified location.
func ExtractAPIKey(r *http.Request, location, name string) string {
	switch location {
	case "header":
		return r.Header.Get(name)
	case "query":
		return r.URL.Query().Get(name)
	case "cookie":
		if c, err := r.Cookie(name); err == nil {
			return c.Value
		}
	}
	return ""
}
