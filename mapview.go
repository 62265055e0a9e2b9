package dynview

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dynview/dynview/internal/hashing"
)

// MapView is a dynamic view over an insertion-ordered map. The backing
// container is an ordered map so that the unreduced iteration order is
// deterministic, matching the container's insertion order.
type MapView[K comparable, V any] struct {
	viewBase[K, V]
	m *orderedmap.OrderedMap[K, V]
}

// NewMapView creates a view over m. The view keeps a reference to the map,
// so external mutations are visible but require an Update call to be
// reflected in the index.
func NewMapView[K comparable, V any](m *orderedmap.OrderedMap[K, V], optFns ...Option[V]) (*MapView[K, V], error) {
	if m == nil {
		return nil, ErrNilData
	}
	o := applyOptions(optFns)
	v := &MapView[K, V]{m: m}
	v.init(mapHost[K, V]{v: v}, nil, o.logger, o.metrics, o.codec, o.compression)
	v.detach = func() { v.m = nil }
	if err := v.applyReducers(o.filters, o.sort, o.reversed); err != nil {
		return nil, err
	}
	return v, nil
}

// Data returns the live backing map.
func (v *MapView[K, V]) Data() *orderedmap.OrderedMap[K, V] { return v.m }

// SetData replaces the view's contents and forces one index update. With
// replace false the existing map is kept and reconciled in place: every pair
// of data is upserted, then keys absent from data are pruned, so callers
// holding the original map reference observe the new contents. With replace
// true the view adopts data directly.
func (v *MapView[K, V]) SetData(data *orderedmap.OrderedMap[K, V], replace bool) error {
	if v.destroyed {
		return nil
	}
	if data == nil {
		return ErrNilData
	}
	if replace || v.m == nil {
		v.m = data
	} else {
		for p := data.Oldest(); p != nil; p = p.Next() {
			v.m.Set(p.Key, p.Value)
		}
		var stale []K
		for p := v.m.Oldest(); p != nil; p = p.Next() {
			if _, ok := data.Get(p.Key); !ok {
				stale = append(stale, p.Key)
			}
		}
		for _, k := range stale {
			v.m.Delete(k)
		}
	}
	v.ix.invalidate()
	v.triggerUpdate(updateOptions{force: true})
	return nil
}

type mapHost[K comparable, V any] struct{ v *MapView[K, V] }

func (h mapHost[K, V]) size() int {
	if h.v.m == nil {
		return 0
	}
	return h.v.m.Len()
}

func (h mapHost[K, V]) keys(reversed bool) iter.Seq[K] {
	return func(yield func(K) bool) {
		if h.v.m == nil {
			return
		}
		if reversed {
			for p := h.v.m.Newest(); p != nil; p = p.Prev() {
				if !yield(p.Key) {
					return
				}
			}
			return
		}
		for p := h.v.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key) {
				return
			}
		}
	}
}

func (h mapHost[K, V]) lookup(k K) V {
	if h.v.m == nil {
		var zero V
		return zero
	}
	val, _ := h.v.m.Get(k)
	return val
}

func (h mapHost[K, V]) hashKey(k K) uint64 { return hashing.Key(k) }
