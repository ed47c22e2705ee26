package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	opt, ok := Find("Chicago, IL")
	require.True(t, ok)
	assert.Equal(t, "Chicago", opt.Label)
	assert.Equal(t, "Illinois", opt.State)

	_, ok = Find("chicago, il")
	assert.False(t, ok, "find is exact-match only")

	_, ok = Find("Nowhere, ZZ")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	t.Run("by label fragment", func(t *testing.T) {
		got := Search("kansas", 0)
		require.Len(t, got, 1)
		assert.Equal(t, "Kansas City, MO", got[0].Value)
	})

	t.Run("by state", func(t *testing.T) {
		got := Search("texas", 0)
		require.Len(t, got, 3)
	})

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Len(t, Search("", 0), len(Options()))
	})

	t.Run("limit applies", func(t *testing.T) {
		got := Search("", 5)
		assert.Len(t, got, 5)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search("zzz", 0))
	})
}

func TestOptionsReturnsCopy(t *testing.T) {
	a := Options()
	a[0].Label = "mutated"
	assert.NotEqual(t, "mutated", Options()[0].Label)
}
