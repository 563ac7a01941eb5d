package model_test

import (
	"testing"

	"github.com/dbradf/shrub-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructors(t *testing.T) {
	assert.Equal(t, model.KindNull, model.NullValue().Kind)
	assert.Equal(t, model.Value{Kind: model.KindString, Str: "x"}, model.StringValue("x"))
	assert.Equal(t, model.Value{Kind: model.KindInt, Int: 42}, model.IntValue(42))
	assert.Equal(t, model.Value{Kind: model.KindFloat, Float: 0.5}, model.FloatValue(0.5))
	assert.Equal(t, model.Value{Kind: model.KindBool, Bool: true}, model.BoolValue(true))

	list := model.ListValue(model.IntValue(1), model.IntValue(2))
	require.Equal(t, model.KindList, list.Kind)
	require.Len(t, list.List, 2)

	m := model.MapValue(model.Field{Key: "a", Value: model.IntValue(1)})
	require.Equal(t, model.KindMap, m.Kind)
	require.Len(t, m.Map, 1)
}

func TestMapping_Get(t *testing.T) {
	m := model.Mapping{
		{Key: "a", Value: model.StringValue("first")},
		{Key: "b", Value: model.StringValue("other")},
		{Key: "a", Value: model.StringValue("second")},
	}

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", v.Str, "later occurrences shadow earlier ones")

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMapping_Set(t *testing.T) {
	var m model.Mapping
	m = m.Set("a", model.IntValue(1))
	m = m.Set("b", model.IntValue(2))
	m = m.Set("a", model.IntValue(3))

	require.Equal(t, []string{"a", "b"}, m.Keys(), "Set replaces in place")
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int)
}

func TestExpansions_GetSet(t *testing.T) {
	var e model.Expansions
	e = e.Set("goroot", "/opt/go")
	e = e.Set("arch", "amd64")
	e = e.Set("goroot", "/usr/local/go")

	require.Len(t, e, 2)
	v, ok := e.Get("goroot")
	require.True(t, ok)
	assert.Equal(t, "/usr/local/go", v)
}
