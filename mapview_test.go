package dynview

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func orderedFrom[K comparable, V any](pairs ...orderedmap.Pair[K, V]) *orderedmap.OrderedMap[K, V] {
	m := orderedmap.New[K, V]()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

func pair[K comparable, V any](k K, v V) orderedmap.Pair[K, V] {
	return orderedmap.Pair[K, V]{Key: k, Value: v}
}

func TestMapViewReduce(t *testing.T) {
	t.Run("NilMap", func(t *testing.T) {
		_, err := NewMapView[string, int](nil)
		assert.ErrorIs(t, err, ErrNilData)
	})

	t.Run("InsertionOrderPassthrough", func(t *testing.T) {
		m := orderedFrom(pair("c", 3), pair("a", 1), pair("b", 2))
		v, err := NewMapView(m)
		require.NoError(t, err)

		assert.Equal(t, 3, v.Length())
		assert.Equal(t, []string{"c", "a", "b"}, slices.Collect(v.Keys()))
		assert.Equal(t, []int{3, 1, 2}, slices.Collect(v.Values()))
	})

	t.Run("FilterAndSort", func(t *testing.T) {
		m := orderedFrom(pair("a", 5), pair("b", 1), pair("c", 3), pair("d", 2))
		v, err := NewMapView(m,
			WithFilters(FilterFunc[int](func(n int) bool { return n > 1 })),
			WithSort(CompareFunc[int](cmp.Compare[int])),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"d", "c", "a"}, slices.Collect(v.Keys()))
		assert.Equal(t, []int{2, 3, 5}, slices.Collect(v.Values()))
	})

	t.Run("Reversed", func(t *testing.T) {
		m := orderedFrom(pair("a", 1), pair("b", 2), pair("c", 3))
		v, err := NewMapView(m)
		require.NoError(t, err)

		v.SetReversed(true)
		assert.Equal(t, []string{"c", "b", "a"}, slices.Collect(v.Keys()))
	})

	t.Run("All", func(t *testing.T) {
		m := orderedFrom(pair("a", 1), pair("b", 2))
		v, err := NewMapView(m)
		require.NoError(t, err)

		got := map[string]int{}
		for k, val := range v.All() {
			got[k] = val
		}
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)
	})
}

func TestMapViewSetData(t *testing.T) {
	t.Run("ReconcileInPlace", func(t *testing.T) {
		m := orderedFrom(pair("a", 1), pair("b", 2), pair("c", 3))
		v, err := NewMapView(m)
		require.NoError(t, err)

		notifies := 0
		v.Subscribe(func() { notifies++ })
		require.Equal(t, 1, notifies)

		require.NoError(t, v.SetData(orderedFrom(pair("b", 20), pair("d", 4)), false))

		// The caller's original map reference observes the new contents.
		assert.Same(t, m, v.Data())
		assert.Equal(t, []string{"b", "d"}, slices.Collect(v.Keys()))
		assert.Equal(t, []int{20, 4}, slices.Collect(v.Values()))
		assert.Equal(t, 1+1, notifies)
	})

	t.Run("Replace", func(t *testing.T) {
		v, err := NewMapView(orderedFrom(pair("a", 1)))
		require.NoError(t, err)

		next := orderedFrom(pair("x", 9))
		require.NoError(t, v.SetData(next, true))

		assert.Same(t, next, v.Data())
		assert.Equal(t, []string{"x"}, slices.Collect(v.Keys()))
	})

	t.Run("NilData", func(t *testing.T) {
		v, err := NewMapView(orderedFrom(pair("a", 1)))
		require.NoError(t, err)

		assert.ErrorIs(t, v.SetData(nil, false), ErrNilData)
	})

	t.Run("ReindexesThroughFilter", func(t *testing.T) {
		v, err := NewMapView(orderedFrom(pair("a", 1), pair("b", 2)),
			WithFilters(FilterFunc[int](func(n int) bool { return n%2 == 0 })),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"b"}, slices.Collect(v.Keys()))

		require.NoError(t, v.SetData(orderedFrom(pair("a", 4), pair("b", 5)), false))
		assert.Equal(t, []string{"a"}, slices.Collect(v.Keys()))
	})
}

func TestMapViewUpdate(t *testing.T) {
	t.Run("DetectsExternalMutation", func(t *testing.T) {
		m := orderedFrom(pair("a", 1), pair("b", 2), pair("c", 3))
		v, err := NewMapView(m,
			WithFilters(FilterFunc[int](func(n int) bool { return n%2 == 1 })),
		)
		require.NoError(t, err)

		notifies := 0
		v.Subscribe(func() { notifies++ })
		require.Equal(t, 1, notifies)
		require.Equal(t, []string{"a", "c"}, slices.Collect(v.Keys()))

		m.Set("b", 7)
		v.Update()
		assert.Equal(t, 2, notifies)
		assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(v.Keys()))
	})

	t.Run("SkipsWhenIndexUnchanged", func(t *testing.T) {
		m := orderedFrom(pair("a", 1), pair("b", 2))
		v, err := NewMapView(m,
			WithFilters(FilterFunc[int](func(n int) bool { return n%2 == 1 })),
		)
		require.NoError(t, err)

		notifies := 0
		v.Subscribe(func() { notifies++ })

		// Same visible keys, different value.
		m.Set("a", 9)
		v.Update()
		assert.Equal(t, 1, notifies)
	})
}

func TestMapViewDestroy(t *testing.T) {
	v, err := NewMapView(orderedFrom(pair("a", 1), pair("b", 2)))
	require.NoError(t, err)

	notifies := 0
	v.Subscribe(func() { notifies++ })
	require.Equal(t, 1, notifies)

	v.Destroy()
	assert.Equal(t, 2, notifies)
	assert.Zero(t, v.Length())
	assert.Nil(t, v.Data())
	assert.Empty(t, slices.Collect(v.Keys()))
}
