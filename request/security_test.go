package request

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/synth/model"
)

func schemes(s ...model.SecurityScheme) []model.Ref[model.SecurityScheme] {
	refs := make([]model.Ref[model.SecurityScheme], len(s))
	for i, scheme := range s {
		refs[i] = model.Direct(scheme)
	}
	return refs
}

func authorization(t *testing.T, f SecurityFragments) string {
	t.Helper()
	v, ok := f.Headers.Get("Authorization")
	require.True(t, ok)
	return v
}

func TestApplySecurityAPIKey(t *testing.T) {
	got := ApplySecurity(schemes(
		model.APIKeyScheme{Name: "x-api-key", In: model.LocationHeader, Token: "header-key"},
		model.APIKeyScheme{Name: "api_key", In: model.LocationQuery, Token: "query-key"},
		model.APIKeyScheme{Name: "session", In: model.LocationCookie, Token: "cookie-key"},
	), nil, EmptyTokenPlaceholder)

	v, _ := got.Headers.Get("x-api-key")
	require.Equal(t, "header-key", v)
	q, _ := got.Query.Get("api_key")
	require.Equal(t, "query-key", q)
	require.Equal(t, []model.Cookie{{Name: "session", Value: "cookie-key", Path: "/"}}, got.Cookies)
}

func TestApplySecurityPlaceholderAndEnv(t *testing.T) {
	got := ApplySecurity(schemes(
		model.APIKeyScheme{Name: "x-api-key", In: model.LocationHeader},
		model.APIKeyScheme{Name: "x-env-key", In: model.LocationHeader, Token: "{{key}}"},
	), map[string]string{"key": "my-secret-key-123"}, "NO_VALUE")

	v, _ := got.Headers.Get("x-api-key")
	require.Equal(t, "NO_VALUE", v)
	v, _ = got.Headers.Get("x-env-key")
	require.Equal(t, "my-secret-key-123", v)
}

func TestApplySecurityHTTP(t *testing.T) {
	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		scheme model.HTTPScheme
		env    map[string]string
		want   string
	}{
		{"basic", model.HTTPScheme{Scheme: "basic", Username: "scalar", Password: "user"}, nil, "Basic " + encode("scalar:user")},
		{"basic empty credentials", model.HTTPScheme{Scheme: "basic"}, nil, "Basic username:password"},
		{"basic password only", model.HTTPScheme{Scheme: "Basic", Password: "pw"}, nil, "Basic " + encode(":pw")},
		{"basic unicode", model.HTTPScheme{Scheme: "basic", Username: "用户", Password: "密码"}, nil, "Basic " + encode("用户:密码")},
		{
			"basic from env",
			model.HTTPScheme{Scheme: "basic", Username: "{{user}}", Password: "{{pass}}"},
			map[string]string{"user": "admin", "pass": "super-secret"},
			"Basic " + encode("admin:super-secret"),
		},
		{"bearer", model.HTTPScheme{Scheme: "bearer", Token: "test-token"}, nil, "Bearer test-token"},
		{"bearer placeholder", model.HTTPScheme{Scheme: "bearer"}, nil, "Bearer YOUR_SECRET_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySecurity(schemes(tt.scheme), tt.env, EmptyTokenPlaceholder)
			require.Equal(t, tt.want, authorization(t, got))
		})
	}
}

func TestApplySecurityOAuth2(t *testing.T) {
	t.Run("first flow with a token wins", func(t *testing.T) {
		got := ApplySecurity(schemes(model.OAuth2Scheme{Flows: []model.OAuthFlow{
			{Name: "implicit"},
			{Name: "authorizationCode", Token: "test-token-code"},
			{Name: "clientCredentials", Token: "test-token-client"},
		}}), nil, EmptyTokenPlaceholder)

		require.Equal(t, "Bearer test-token-code", authorization(t, got))
	})

	t.Run("placeholder without tokens", func(t *testing.T) {
		got := ApplySecurity(schemes(model.OAuth2Scheme{Flows: []model.OAuthFlow{{Name: "implicit"}}}), nil, "")
		require.Equal(t, "Bearer ", authorization(t, got))
	})
}

func TestApplySecurityLaterSchemeOverwrites(t *testing.T) {
	got := ApplySecurity(schemes(
		model.HTTPScheme{Scheme: "bearer", Token: "first"},
		model.OpenIDConnectScheme{Token: "second"},
	), nil, EmptyTokenPlaceholder)

	require.Equal(t, "Bearer second", authorization(t, got))
	require.Equal(t, 1, got.Headers.Len())
}

func TestApplySecurityIndirectScheme(t *testing.T) {
	ref := model.Indirect[model.SecurityScheme]("#/components/securitySchemes/key",
		model.APIKeyScheme{Name: "X-Key", In: model.LocationHeader, Token: "k"})

	got := ApplySecurity([]model.Ref[model.SecurityScheme]{ref}, nil, EmptyTokenPlaceholder)
	v, _ := got.Headers.Get("X-Key")
	require.Equal(t, "k", v)
}

func TestApplySecurityIgnoresPointerSchemes(t *testing.T) {
	got := ApplySecurity(schemes(&model.HTTPScheme{Scheme: "bearer", Token: "t"}), nil, EmptyTokenPlaceholder)

	require.Equal(t, 0, got.Headers.Len())
	require.Equal(t, 0, got.Query.Len())
	require.Empty(t, got.Cookies)
}
