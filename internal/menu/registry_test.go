package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []*Item) []NodeID {
	out := make([]NodeID, len(items))
	for i, item := range items {
		out[i] = item.Node
	}
	return out
}

func TestRegistryPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry(&Item{Node: "b"}, &Item{Node: "a"}, &Item{Node: "c"})
	assert.Equal(t, []NodeID{"b", "a", "c"}, ids(r.Values()))
	assert.Equal(t, 3, r.Len())
}

func TestRegistrySetReplacesInPlace(t *testing.T) {
	r := NewRegistry(&Item{Node: "a", Label: "one"}, &Item{Node: "b"})
	r.Set(&Item{Node: "a", Label: "two"})

	assert.Equal(t, []NodeID{"a", "b"}, ids(r.Values()))
	item, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "two", item.Label)
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var r *Registry
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Values())
	_, ok := r.Get("a")
	assert.False(t, ok)
}

func TestRegistryWalkVisitsParentsFirst(t *testing.T) {
	child := NewRegistry(&Item{Node: "a1"}, &Item{Node: "a2"})
	r := NewRegistry(&Item{Node: "a", Submenu: true, Children: child}, &Item{Node: "b"})

	var seen []NodeID
	var depths []int
	r.Walk(func(item *Item, depth int) {
		seen = append(seen, item.Node)
		depths = append(depths, depth)
	})
	assert.Equal(t, []NodeID{"a", "a1", "a2", "b"}, seen)
	assert.Equal(t, []int{0, 1, 1, 0}, depths)
}

func TestItemStrideDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, (&Item{Group: true}).Stride())
	assert.Equal(t, 3, (&Item{Group: true, Columns: 3}).Stride())
	var nilItem *Item
	assert.Equal(t, 1, nilItem.Stride())
}

func TestHasChildren(t *testing.T) {
	assert.False(t, (&Item{Submenu: true}).HasChildren())
	assert.False(t, (&Item{Submenu: true, Children: NewRegistry()}).HasChildren())
	assert.True(t, (&Item{Group: true, Children: NewRegistry(&Item{Node: "x"})}).HasChildren())
	assert.False(t, (&Item{Children: NewRegistry(&Item{Node: "x"})}).HasChildren())
}
