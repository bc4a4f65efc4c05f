package request

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/synth/model"
)

var (
	rgb = model.Object(
		model.F("R", model.Int(100)),
		model.F("G", model.Int(200)),
		model.F("B", model.Int(150)),
	)
	withNull = model.Object(model.F("a", model.Null()), model.F("b", model.String("value")))
)

func TestSerializeSimple(t *testing.T) {
	tests := []struct {
		name    string
		value   model.Value
		explode bool
		want    string
	}{
		{"string", model.String("blue"), false, "blue"},
		{"number", model.Int(5), true, "5"},
		{"array", strs("blue", "black", "brown"), false, "blue,black,brown"},
		{"array exploded is the same", strs("blue", "black", "brown"), true, "blue,black,brown"},
		{"empty array", model.List(), false, ""},
		{"array with null", model.List(model.String("a"), model.Null(), model.String("b")), false, "a,,b"},
		{"object", rgb, false, "R,100,G,200,B,150"},
		{"object exploded", rgb, true, "R=100,G=200,B=150"},
		{"empty object", model.Object(), true, ""},
		{"object with null", withNull, false, "a,null,b,value"},
		{"object with null exploded", withNull, true, "a=null,b=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serializeSimple(tt.value, tt.explode))
		})
	}
}

func TestSerializeForm(t *testing.T) {
	t.Run("array exploded", func(t *testing.T) {
		got := serializeForm(model.List(model.String("a"), model.Null(), model.Int(3)), true)
		require.Equal(t, []entry{{value: "a"}, {value: "null"}, {value: "3"}}, got)
	})

	t.Run("object exploded", func(t *testing.T) {
		got := serializeForm(withNull, true)
		require.Equal(t, []entry{{key: "a", value: "null"}, {key: "b", value: "value"}}, got)
	})

	t.Run("empty array exploded", func(t *testing.T) {
		require.Empty(t, serializeForm(model.List(), true))
	})

	t.Run("not exploded", func(t *testing.T) {
		require.Equal(t, []entry{{value: "R,100,G,200,B,150"}}, serializeForm(rgb, false))
		require.Equal(t, []entry{{value: "3,4,5"}}, serializeForm(model.List(model.Int(3), model.Int(4), model.Int(5)), false))
	})
}

func TestSerializeFormForCookies(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		want  string
	}{
		{"array", strs("blue", "black", "brown"), "blue,black,brown"},
		{"array with null", model.List(model.String("a"), model.Null(), model.String("b")), "a,null,b"},
		{"flat object", rgb, "R,100,G,200,B,150"},
		{
			"nested object",
			model.Object(
				model.F("user", model.Object(model.F("name", model.String("John")), model.F("age", model.Int(30)))),
				model.F("role", model.String("admin")),
			),
			"user,name,John,age,30,role,admin",
		},
		{
			"deeply nested",
			model.Object(model.F("level1", model.Object(model.F("level2", model.Object(model.F("level3", model.String("deep"))))))),
			"level1,level2,level3,deep",
		},
		{"object with null", withNull, "a,null,b,value"},
		{"empty object", model.Object(), ""},
		{"scalar", model.String("session123"), "session123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, []entry{{value: tt.want}}, serializeFormForCookies(tt.value, false))
		})
	}
}

func TestSerializeDelimited(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		space string
		pipe  string
	}{
		{"array", strs("blue", "black", "brown"), "blue black brown", "blue|black|brown"},
		{"array with null", model.List(model.String("a"), model.Null(), model.String("b")), "a  b", "a||b"},
		{"object", rgb, "R 100 G 200 B 150", "R|100|G|200|B|150"},
		{"object with null", withNull, "a null b value", "a||b|value"},
		{"empty", model.List(), "", ""},
		{"number", model.Int(42), "42", "42"},
		{"null", model.Null(), "null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.space, serializeSpaceDelimited(tt.value))
			require.Equal(t, tt.pipe, serializePipeDelimited(tt.value))
		})
	}
}

func TestSerializeDeepObject(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		value := model.Object(
			model.F("name", model.String("John")),
			model.F("address", model.Object(model.F("city", model.String("NYC")), model.F("zip", model.Int(10001)))),
			model.F("active", model.Bool(true)),
		)
		require.Equal(t, []entry{
			{key: "user[name]", value: "John"},
			{key: "user[address][city]", value: "NYC"},
			{key: "user[address][zip]", value: "10001"},
			{key: "user[active]", value: "true"},
		}, serializeDeepObject("user", value))
	})

	t.Run("null values", func(t *testing.T) {
		require.Equal(t, []entry{
			{key: "data[a]", value: "null"},
			{key: "data[b]", value: "value"},
		}, serializeDeepObject("data", withNull))
	})

	t.Run("non-objects yield nothing", func(t *testing.T) {
		require.Empty(t, serializeDeepObject("p", model.String("x")))
		require.Empty(t, serializeDeepObject("p", model.Null()))
		require.Empty(t, serializeDeepObject("p", strs("a", "b")))
	})
}

func TestSerializeContent(t *testing.T) {
	obj := model.Object(model.F("name", model.String("John")), model.F("age", model.Int(30)))

	tests := []struct {
		name        string
		value       model.Value
		contentType string
		want        string
	}{
		{"json object", obj, "application/json", `{"name":"John","age":30}`},
		{"json array", strs("red", "green"), "application/json", `["red","green"]`},
		{"json number", model.Int(42), "application/json", "42"},
		{"json null", model.Null(), "application/json", "null"},
		{"vendor json", obj, "application/vnd.api+json", `{"name":"John","age":30}`},
		{"string as-is", model.String("already a string"), "application/json", "already a string"},
		{"text number", model.Int(123), "text/plain", "123"},
		{"text object", model.Object(model.F("key", model.String("value"))), "text/plain", `{"key":"value"}`},
		{"text array", model.List(model.Int(1), model.Int(2), model.Int(3)), "text/plain", "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serializeContent(tt.value, tt.contentType))
		})
	}
}
