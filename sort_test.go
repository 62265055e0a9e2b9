package dynview

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSlot(t *testing.T) {
	t.Run("SetSortsValues", func(t *testing.T) {
		v, err := NewArrayView([]int{5, 3, 8, 1})
		require.NoError(t, err)

		require.NoError(t, v.Sort().Set(CompareFunc[int](cmp.Compare[int])))
		assert.True(t, v.Sort().Active())
		assert.Equal(t, []int{1, 3, 5, 8}, slices.Collect(v.Values()))
	})

	t.Run("ClearRestoresNaturalOrder", func(t *testing.T) {
		v, err := NewArrayView([]int{5, 3, 8, 1})
		require.NoError(t, err)

		require.NoError(t, v.Sort().Set(CompareFunc[int](cmp.Compare[int])))
		v.Sort().Clear()

		assert.False(t, v.Sort().Active())
		assert.Equal(t, []int{5, 3, 8, 1}, slices.Collect(v.Values()))
	})

	t.Run("NilCompareFunc", func(t *testing.T) {
		v, err := NewArrayView([]int{1})
		require.NoError(t, err)

		assert.ErrorIs(t, v.Sort().Set(CompareFunc[int](nil)), ErrNilCompare)
	})

	t.Run("ClearEmptySlotIsNoop", func(t *testing.T) {
		v, err := NewArrayView([]int{1, 2})
		require.NoError(t, err)

		notifies := 0
		v.Subscribe(func() { notifies++ })
		require.Equal(t, 1, notifies)

		v.Sort().Clear()
		assert.Equal(t, 1, notifies)
	})

	t.Run("ReplaceComparator", func(t *testing.T) {
		v, err := NewArrayView([]int{2, 1, 3})
		require.NoError(t, err)

		require.NoError(t, v.Sort().Set(CompareFunc[int](cmp.Compare[int])))
		require.NoError(t, v.Sort().Set(CompareFunc[int](func(a, b int) int {
			return cmp.Compare(b, a)
		})))

		assert.Equal(t, []int{3, 2, 1}, slices.Collect(v.Values()))
	})

	t.Run("NeutralComparatorRestoresNaturalOrder", func(t *testing.T) {
		v, err := NewArrayView([]int{5, 3, 8, 1})
		require.NoError(t, err)

		require.NoError(t, v.Sort().Set(CompareFunc[int](cmp.Compare[int])))
		require.Equal(t, []int{1, 3, 5, 8}, slices.Collect(v.Values()))

		require.NoError(t, v.Sort().Set(CompareFunc[int](func(int, int) int { return 0 })))
		assert.Equal(t, []int{5, 3, 8, 1}, slices.Collect(v.Values()))
	})

	t.Run("StableOnTies", func(t *testing.T) {
		type pair struct{ k, n int }
		data := []pair{{1, 0}, {0, 1}, {1, 2}, {0, 3}}
		v, err := NewArrayView(data)
		require.NoError(t, err)

		require.NoError(t, v.Sort().Set(CompareFunc[pair](func(a, b pair) int {
			return cmp.Compare(a.k, b.k)
		})))

		assert.Equal(t, []pair{{0, 1}, {0, 3}, {1, 0}, {1, 2}}, slices.Collect(v.Values()))
	})
}
