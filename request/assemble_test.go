package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/synth/model"
)

func petOperation(method model.Method) *model.Operation {
	return &model.Operation{
		ID:     "updatePet",
		Method: method,
		Path:   "/pets/{petId}",
		Parameters: []model.Parameter{
			param("petId", model.LocationPath, model.String("{{pet}}"), required()),
			param("X-Trace", model.LocationHeader, model.String("trace-1")),
			param("fields", model.LocationQuery, strs("name", "tag"), withExplode(false)),
			param("session", model.LocationCookie, model.String("s1")),
		},
		RequestBody: jsonBody("application/json", model.Object(model.F("name", model.String("Rex")))),
	}
}

var petServer = &model.Server{URL: "https://{{host}}/v1"}

func petInput(method model.Method) Input {
	return Input{
		Operation:   petOperation(method),
		Server:      petServer,
		Environment: model.Environment{"host": "api.example.com", "pet": "a/1"},
		Security: schemes(
			model.APIKeyScheme{Name: "api_key", In: model.LocationQuery, Token: "k"},
			model.HTTPScheme{Scheme: "bearer", Token: "t"},
		),
		GlobalCookies: []model.Cookie{
			{Name: "global", Value: "g", Domain: ".example.com"},
			{Name: "elsewhere", Value: "x", Domain: "other.com"},
		},
	}
}

func TestAssemble(t *testing.T) {
	a, err := Assemble(petInput(model.MethodPatch))
	require.NoError(t, err)

	require.Equal(t, "PATCH", a.Method)
	require.Equal(t, "https://api.example.com/v1/pets/a%2F1?fields=name%2Ctag&api_key=k", a.URL)
	require.Equal(t, []Header{
		{"Content-Type", "application/json"},
		{"Accept", "*/*"},
		{"X-Trace", "trace-1"},
		{"Authorization", "Bearer t"},
	}, a.Headers.Entries())
	require.Equal(t, &CookieHeader{Name: "Cookie", Value: "global=g; session=s1"}, a.Cookie)
	require.Equal(t, RawBody{Text: `{"name":"Rex"}`}, a.Body)
}

func TestAssembleMethodWithoutBody(t *testing.T) {
	for _, method := range []model.Method{model.MethodGet, model.MethodHead, model.MethodOptions} {
		t.Run(string(method), func(t *testing.T) {
			a, err := Assemble(petInput(method))
			require.NoError(t, err)
			require.Nil(t, a.Body)
			require.False(t, a.Headers.Has("Content-Type"))
		})
	}

	a, err := Assemble(petInput(model.MethodPatch))
	require.NoError(t, err)
	require.NotNil(t, a.Body)
}

func TestAssembleLowercaseMethod(t *testing.T) {
	a, err := Assemble(petInput("patch"))
	require.NoError(t, err)
	require.Equal(t, "PATCH", a.Method)
	require.NotNil(t, a.Body)
}

func TestAssembleIsIdempotent(t *testing.T) {
	first, err := Assemble(petInput(model.MethodPost))
	require.NoError(t, err)
	second, err := Assemble(petInput(model.MethodPost))
	require.NoError(t, err)

	require.Equal(t, first.URL, second.URL)
	require.Equal(t, first.Headers.Entries(), second.Headers.Entries())
	require.Equal(t, first.Cookie, second.Cookie)
	require.Equal(t, first.Body, second.Body)
	require.Equal(t, first.Fingerprint(), second.Fingerprint())

	other := petInput(model.MethodPost)
	other.Environment["pet"] = "b"
	third, err := Assemble(other)
	require.NoError(t, err)
	require.NotEqual(t, first.Fingerprint(), third.Fingerprint())
}

func TestAssembleHeaderPrecedence(t *testing.T) {
	op := &model.Operation{
		Method: model.MethodPost,
		Path:   "/things",
		Parameters: []model.Parameter{
			param("Accept", model.LocationHeader, model.String("application/xml")),
			param("Authorization", model.LocationHeader, model.String("Bearer from-param")),
		},
		RequestBody: jsonBody("application/json", model.Object()),
	}

	a, err := Assemble(Input{
		Operation: op,
		Server:    &model.Server{URL: "https://example.com"},
		Security:  schemes(model.HTTPScheme{Scheme: "bearer", Token: "from-security"}),
	})
	require.NoError(t, err)

	require.Equal(t, []Header{
		{"Content-Type", "application/json"},
		{"Accept", "application/xml"},
		{"Authorization", "Bearer from-security"},
	}, a.Headers.Entries())
}

func TestAssembleDisabledDefaultHeaders(t *testing.T) {
	op := &model.Operation{
		Method:                 model.MethodGet,
		Path:                   "/things",
		DisabledDefaultHeaders: map[string]map[string]bool{"default": {"accept": true}},
	}

	a, err := Assemble(Input{Operation: op})
	require.NoError(t, err)
	require.Zero(t, a.Headers.Len())
}

func TestAssembleStripsContentTypeForStructuredBodies(t *testing.T) {
	op := &model.Operation{
		Method: model.MethodPost,
		Path:   "/upload",
		RequestBody: jsonBody("multipart/form-data", model.Form(
			model.FormEntry{Name: "", Value: model.String("x")},
			model.FormEntry{Name: "{{n}}", Value: model.String("y")},
		)),
	}

	a, err := Assemble(Input{Operation: op, Environment: model.Environment{"n": "field"}})
	require.NoError(t, err)

	require.False(t, a.Headers.Has("Content-Type"))
	require.Equal(t, MultipartBody{Fields: []FormField{{Name: "field", Value: "y"}}}, a.Body)
}

func TestAssembleEmptyURL(t *testing.T) {
	_, err := Assemble(Input{Operation: &model.Operation{Method: model.MethodGet}})
	require.ErrorIs(t, err, ErrEmptyURL)

	var assemblyErr *AssemblyError
	require.True(t, errors.As(err, &assemblyErr))
	require.Equal(t, StageResolveURL, assemblyErr.Stage)
}

func TestAssembleRecoversPanics(t *testing.T) {
	boom := func(model.Method, *model.Operation, string) []DefaultHeader {
		panic("boom")
	}

	a, err := Assemble(petInput(model.MethodGet), WithDefaultHeaders(boom))
	require.Nil(t, a)
	require.ErrorIs(t, err, ErrAssemblyFailed)

	var assemblyErr *AssemblyError
	require.True(t, errors.As(err, &assemblyErr))
	require.Equal(t, StageMergeHeaders, assemblyErr.Stage)
	require.Contains(t, err.Error(), "boom")
}

func TestAssembleRequiresOperation(t *testing.T) {
	_, err := Assemble(Input{})
	require.ErrorIs(t, err, ErrAssemblyFailed)
}

func TestAssembleProxy(t *testing.T) {
	a, err := Assemble(petInput(model.MethodGet), WithProxy("https://proxy.scalar.com", nil))
	require.NoError(t, err)

	require.Equal(t,
		"https://proxy.scalar.com?scalar_url=https%3A%2F%2Fapi.example.com%2Fv1%2Fpets%2Fa%252F1%3Ffields%3Dname%252Ctag%26api_key%3Dk",
		a.URL)
	require.Equal(t, &CookieHeader{Name: "X-Scalar-Cookie", Value: "global=g; session=s1"}, a.Cookie)
}

func TestAssembleProxySkipsLocalhost(t *testing.T) {
	in := petInput(model.MethodGet)
	in.Server = &model.Server{URL: "http://localhost:8080"}

	a, err := Assemble(in, WithProxy("https://proxy.scalar.com", nil))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/pets/a%2F1?fields=name%2Ctag&api_key=k", a.URL)
	require.Equal(t, "Cookie", a.Cookie.Name)
}

func TestAssembleEmbeddedClient(t *testing.T) {
	in := petInput(model.MethodGet)
	in.Operation.Parameters = append(in.Operation.Parameters, param("User-Agent", model.LocationHeader, model.String("synth/1.0")))

	a, err := Assemble(in, WithExecutionContext(StaticContext(true)))
	require.NoError(t, err)

	ua, ok := a.Headers.Get("X-Scalar-User-Agent")
	require.True(t, ok)
	require.Equal(t, "synth/1.0", ua)
	require.Equal(t, "X-Scalar-Cookie", a.Cookie.Name)
}

func TestAssembleOriginalCookieHeader(t *testing.T) {
	op := &model.Operation{
		Method: model.MethodGet,
		Path:   "/",
		Parameters: []model.Parameter{
			param("Cookie", model.LocationHeader, model.String("existing=value")),
			param("session", model.LocationCookie, model.String("s1")),
		},
	}

	a, err := Assemble(Input{Operation: op, Server: &model.Server{URL: "https://example.com"}})
	require.NoError(t, err)

	require.False(t, a.Headers.Has("Cookie"))
	require.Equal(t, "existing=value; session=s1", a.Cookie.Value)
}

func TestAssembleCancellation(t *testing.T) {
	a, err := Assemble(petInput(model.MethodGet))
	require.NoError(t, err)
	require.NoError(t, a.Context().Err())

	a.Cancel()
	require.Error(t, a.Context().Err())
}
