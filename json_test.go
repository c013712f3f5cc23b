package mxyaml_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magix-dev/mxyaml"
)

func parseJSON(t *testing.T, src string) any {
	t.Helper()
	node, err := mxyaml.Parse([]byte(src))
	require.NoError(t, err)
	return mxyaml.ToJSON(node)
}

func obj(t *testing.T, v any) *mxyaml.Object {
	t.Helper()
	o, ok := v.(*mxyaml.Object)
	require.True(t, ok, "expected *Object, got %T", v)
	return o
}

func field(t *testing.T, o *mxyaml.Object, key string) any {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok, "missing field %q", key)
	return v
}

func TestToJSONTypedValues(t *testing.T) {
	o := obj(t, parseJSON(t, "count: 42\nprice: 19.99\nenabled: true\nmissing: ~\n"))
	require.Equal(t, int64(42), field(t, o, "count"))
	require.Equal(t, 19.99, field(t, o, "price"))
	require.Equal(t, true, field(t, o, "enabled"))
	require.Nil(t, field(t, o, "missing"))
}

func TestToJSONBasic(t *testing.T) {
	o := obj(t, parseJSON(t, "name: John\nage: 30\nhobbies:\n  - reading\n  - coding\n"))
	require.Equal(t, "John", field(t, o, "name"))
	require.Equal(t, int64(30), field(t, o, "age"))
	require.Equal(t, []any{"reading", "coding"}, field(t, o, "hobbies"))
}

func TestToJSONScalarDocuments(t *testing.T) {
	require.Equal(t, "42", parseJSON(t, "\"42\"\n"))
	require.Equal(t, int64(42), parseJSON(t, "42\n"))
	require.Nil(t, parseJSON(t, ""))
}

func TestToJSONFieldOrder(t *testing.T) {
	o := obj(t, parseJSON(t, "zebra: 1\nalpha: 2\nmike: 3\nbeta: 4\n"))
	require.Equal(t, []string{"zebra", "alpha", "mike", "beta"}, o.Keys())

	nested := obj(t, field(t, obj(t, parseJSON(t, "outer:\n  zz: first\n  aa: second\n  mm: third\n")), "outer"))
	require.Equal(t, []string{"zz", "aa", "mm"}, nested.Keys())
}

func TestToJSONDuplicateKeys(t *testing.T) {
	o := obj(t, parseJSON(t, "a: 1\nb: 2\na: 3\n"))
	require.Equal(t, []string{"a", "b"}, o.Keys())
	require.Equal(t, int64(3), field(t, o, "a"))
	require.Equal(t, int64(2), field(t, o, "b"))
}

func TestToJSONTaggedObject(t *testing.T) {
	o := obj(t, parseJSON(t, "!person {name: John, age: 30}\n"))
	require.Equal(t, []string{"__type", "name", "age"}, o.Keys())
	require.Equal(t, "person", field(t, o, "__type"))
	require.Equal(t, "John", field(t, o, "name"))
	require.Equal(t, int64(30), field(t, o, "age"))
}

func TestToJSONTaggedNonObject(t *testing.T) {
	o := obj(t, parseJSON(t, "!custom_tag [1, 2, 3]\n"))
	require.Equal(t, []string{"__type", "__value"}, o.Keys())
	require.Equal(t, "custom_tag", field(t, o, "__type"))
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, field(t, o, "__value"))

	o = obj(t, parseJSON(t, "!str \"hello world\"\n"))
	require.Equal(t, "str", field(t, o, "__type"))
	require.Equal(t, "hello world", field(t, o, "__value"))
}

func TestToJSONTaggedInFlowValue(t *testing.T) {
	o := obj(t, parseJSON(t, "{key: !tagged value}\n"))
	inner := obj(t, field(t, o, "key"))
	require.Equal(t, "tagged", field(t, inner, "__type"))
	require.Equal(t, "value", field(t, inner, "__value"))
}

func TestToJSONNonStringKeys(t *testing.T) {
	o := obj(t, parseJSON(t, "42: answer\ntrue: yes it is\n~: nothing\n1.5: half\n"))
	require.Equal(t, []string{"42", "true", "null", "1.5"}, o.Keys())
	require.Equal(t, "answer", field(t, o, "42"))
}

func TestToJSONCompositeKey(t *testing.T) {
	o := obj(t, parseJSON(t, "[this, is] : a key\n"))
	require.Equal(t, []string{`["this","is"]`}, o.Keys())
	require.Equal(t, "a key", field(t, o, `["this","is"]`))
}

func TestObjectMarshalJSONKeepsOrder(t *testing.T) {
	v := parseJSON(t, "zebra: 1\nalpha: two\nnested:\n  - 1\n  - {}\n")
	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"zebra":1,"alpha":"two","nested":[1,{}]}`, string(out))
}

func TestObjectBasics(t *testing.T) {
	o := mxyaml.NewObject()
	require.Equal(t, 0, o.Len())
	_, ok := o.Get("missing")
	require.False(t, ok)

	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("a", 3)
	require.Equal(t, []string{"a", "b"}, o.Keys())
	require.Equal(t, 3, mustGet(t, o, "a"))

	o.Prepend("front", 0)
	require.Equal(t, []string{"front", "a", "b"}, o.Keys())

	o.Prepend("b", 9)
	require.Equal(t, []string{"b", "front", "a"}, o.Keys())
	require.Equal(t, 9, mustGet(t, o, "b"))
	require.Equal(t, 3, mustGet(t, o, "a"))
}

func mustGet(t *testing.T, o *mxyaml.Object, key string) any {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok)
	return v
}
