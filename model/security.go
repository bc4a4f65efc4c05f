package model

import "strings"

type SecuritySchemeType string

const (
	SecurityTypeAPIKey        SecuritySchemeType = "apiKey"
	SecurityTypeHTTP          SecuritySchemeType = "http"
	SecurityTypeOAuth2        SecuritySchemeType = "oauth2"
	SecurityTypeOpenIDConnect SecuritySchemeType = "openIdConnect"
)

// SecurityScheme is one of APIKeyScheme, HTTPScheme, OAuth2Scheme or OpenIDConnectScheme.
type SecurityScheme interface {
	Type() SecuritySchemeType
}

type APIKeyScheme struct {
	Name  string
	In    Location
	Token string
}

func (APIKeyScheme) Type() SecuritySchemeType { return SecurityTypeAPIKey }

type HTTPScheme struct {
	Scheme       string // basic, bearer, ...
	BearerFormat string
	Username     string
	Password     string
	Token        string
}

func (HTTPScheme) Type() SecuritySchemeType { return SecurityTypeHTTP }

// IsBasic reports whether the scheme is HTTP basic authentication.
func (s HTTPScheme) IsBasic() bool {
	return strings.EqualFold(s.Scheme, "basic")
}

type OAuth2Scheme struct {
	Flows []OAuthFlow
}

func (OAuth2Scheme) Type() SecuritySchemeType { return SecurityTypeOAuth2 }

type OAuthFlow struct {
	Name             string // implicit, password, clientCredentials, authorizationCode
	AuthorizationURL string
	TokenURL         string
	Scopes           []string
	Token            string
}

type OpenIDConnectScheme struct {
	URL   string
	Token string
}

func (OpenIDConnectScheme) Type() SecuritySchemeType { return SecurityTypeOpenIDConnect }

// NamedSecurityScheme is a component security scheme under its document name.
type NamedSecurityScheme struct {
	Name   string
	Scheme Ref[SecurityScheme]
}
