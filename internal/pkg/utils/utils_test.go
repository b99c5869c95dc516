package utils

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedStruct struct {
	Name     string `mapstructure:"name"`
	Port     *int   `mapstructure:"port,omitempty"`
	Untagged string
	hidden   string `mapstructure:"hidden"` // nolint: unused
}

func TestGetFieldsWithTag(t *testing.T) {
	t.Parallel()

	fields := GetFieldsWithTag("mapstructure", &taggedStruct{})
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].TagName())
	assert.Equal(t, "port", fields[1].TagName())

	// Cached value is the same
	assert.Equal(t, fields, GetFieldsWithTag("mapstructure", taggedStruct{}))
}

func TestGetFieldByTagName(t *testing.T) {
	t.Parallel()

	port := 5432
	value, found := GetFieldByTagName("mapstructure", "port", &taggedStruct{Name: "db", Port: &port})
	assert.True(t, found)
	assert.Equal(t, 5432, value)

	value, found = GetFieldByTagName("mapstructure", "name", &taggedStruct{Name: "db"})
	assert.True(t, found)
	assert.Equal(t, "db", value)

	// Zero value
	_, found = GetFieldByTagName("mapstructure", "port", &taggedStruct{})
	assert.False(t, found)

	// Unknown tag name
	_, found = GetFieldByTagName("mapstructure", "foo", &taggedStruct{})
	assert.False(t, found)
}

func TestAsOrderedMap(t *testing.T) {
	t.Parallel()

	m, ok := AsOrderedMap(map[string]any{"b": 1, "a": 2})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	om := orderedmap.New()
	om.Set("x", 1)
	m, ok = AsOrderedMap(om)
	require.True(t, ok)
	assert.Same(t, om, m)

	_, ok = AsOrderedMap([]any{})
	assert.False(t, ok)
	_, ok = AsOrderedMap(nil)
	assert.False(t, ok)
	_, ok = AsOrderedMap((*orderedmap.OrderedMap)(nil))
	assert.False(t, ok)
}

func TestIsEmptyValue(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmptyValue(nil))
	assert.True(t, IsEmptyValue("  "))
	assert.False(t, IsEmptyValue("x"))
	assert.False(t, IsEmptyValue(0))
}
