package request

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/synth/model"
)

func TestBuildBodyNoBody(t *testing.T) {
	require.Nil(t, BuildBody(nil, nil, "default"))
	require.Nil(t, BuildBody(&model.RequestBody{}, nil, "default"))
	require.Nil(t, BuildBody(jsonBody("application/json", model.String("x")), nil, "missing"))
}

func TestBuildBodyJSON(t *testing.T) {
	value := model.Object(
		model.F("name", model.String("{{name}}")),
		model.F("tags", strs("a", "b")),
		model.F("count", model.Int(2)),
	)

	got := BuildBody(jsonBody("application/json", value), map[string]string{"name": "Rex"}, "default")
	require.Equal(t, RawBody{Text: `{"name":"Rex","tags":["a","b"],"count":2}`}, got)
}

func TestBuildBodyScalars(t *testing.T) {
	got := BuildBody(jsonBody("text/plain", model.String("hello {{who}}")), map[string]string{"who": "world"}, "default")
	require.Equal(t, RawBody{Text: "hello world"}, got)

	got = BuildBody(jsonBody("application/json", model.Int(42)), nil, "default")
	require.Equal(t, ScalarBody{Value: model.Int(42)}, got)
}

func TestBuildBodyMultipartForm(t *testing.T) {
	file := model.File{Name: "cat.png", Content: []byte{0x89, 'P', 'N', 'G'}, MimeType: "image/png"}
	value := model.Form(
		model.FormEntry{Name: "", Value: model.String("x")},
		model.FormEntry{Name: "{{n}}", Value: model.String("y")},
		model.FormEntry{Name: "upload", Value: model.FileValue(file)},
	)

	got := BuildBody(jsonBody("multipart/form-data", value), map[string]string{"n": "field"}, "default")

	require.Equal(t, MultipartBody{Fields: []FormField{
		{Name: "field", Value: "y"},
		{Name: "upload", Value: "cat.png", File: &file},
	}}, got)
}

func TestBuildBodyMultipartFromNamedList(t *testing.T) {
	value := model.List(
		model.Object(model.F("name", model.String("")), model.F("value", model.String("x"))),
		model.Object(model.F("name", model.String("{{n}}")), model.F("value", model.String("{{v}}"))),
	)

	got := BuildBody(jsonBody("multipart/form-data", value), map[string]string{"n": "field", "v": "val"}, "default")
	require.Equal(t, MultipartBody{Fields: []FormField{{Name: "field", Value: "val"}}}, got)
}

func TestBuildBodyURLEncodedObject(t *testing.T) {
	value := model.Object(
		model.F("name", model.String("{{name}}")),
		model.F("age", model.Int(3)),
		model.F("skip", model.Null()),
		model.F("good", model.Bool(true)),
	)

	got := BuildBody(jsonBody("application/x-www-form-urlencoded", value), map[string]string{"name": "Rex"}, "default")
	require.Equal(t, URLEncodedBody{Fields: []FormField{
		{Name: "name", Value: "Rex"},
		{Name: "age", Value: "3"},
		{Name: "good", Value: "true"},
	}}, got)
}

func TestBuildBodySelectedContentType(t *testing.T) {
	body := &model.RequestBody{
		Content: []model.MediaType{
			{Type: "application/json", Examples: model.Examples{{Key: "default", Example: model.Direct(model.Example{Value: model.Object(model.F("a", model.Int(1)))})}}},
			{Type: "application/x-www-form-urlencoded", Examples: model.Examples{{Key: "default", Example: model.Direct(model.Example{Value: model.Object(model.F("a", model.Int(1)))})}}},
		},
		SelectedContentType: map[string]string{"default": "application/x-www-form-urlencoded"},
	}

	require.Equal(t, "application/x-www-form-urlencoded", SelectContentType(body, "default"))
	require.Equal(t, "application/json", SelectContentType(body, "other"))
	require.Equal(t, URLEncodedBody{Fields: []FormField{{Name: "a", Value: "1"}}}, BuildBody(body, nil, "default"))
}

func TestBuildBodyDisabledExample(t *testing.T) {
	body := &model.RequestBody{Content: []model.MediaType{{
		Type: "application/json",
		Examples: model.Examples{
			{Key: "off", Example: model.Direct(model.Example{Value: model.String("x"), Disabled: boolPtr(true)})},
			{Key: "on", Example: model.Direct(model.Example{Value: model.String("y"), Disabled: boolPtr(false)})},
			{Key: "unset", Example: model.Direct(model.Example{Value: model.String("z")})},
		},
	}}}

	require.Nil(t, BuildBody(body, nil, "off"))
	require.Equal(t, RawBody{Text: "y"}, BuildBody(body, nil, "on"))
	require.Equal(t, RawBody{Text: "z"}, BuildBody(body, nil, "unset"))
}

func TestSelectContentTypeFallsBackToJSON(t *testing.T) {
	require.Equal(t, "application/json", SelectContentType(&model.RequestBody{}, "default"))
}
