package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	assert.False(t, m.Add("a", "ignored"))
	v, _ = m.Get("a")
	assert.Equal(t, "2", v)

	m.Delete("b")
	assert.Equal(t, []string{"a"}, m.Keys())
	assert.Equal(t, 1, m.Len())

	var nilMap *OrderedMap
	assert.Equal(t, 0, nilMap.Len())
	_, ok = nilMap.Get("a")
	assert.False(t, ok)
}
