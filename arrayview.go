package dynview

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// ArrayView is a dynamic view over a slice. It never reorders or mutates the
// slice itself; filters and the comparator reduce a position index that all
// reads go through.
type ArrayView[T any] struct {
	viewBase[int, T]
	data []T

	visible      *roaring.Bitmap
	visibleValid bool
}

// NewArrayView creates a view over data. The view keeps a reference to the
// slice, so external mutations are visible but require an Update call to be
// reflected in the index. A nil slice is a valid empty view.
func NewArrayView[T any](data []T, optFns ...Option[T]) (*ArrayView[T], error) {
	o := applyOptions(optFns)
	v := &ArrayView[T]{data: data}
	v.init(arrayHost[T]{v: v}, nil, o.logger, o.metrics, o.codec, o.compression)
	v.detach = func() { v.data = nil }
	// The visible-set cache follows index notifications.
	v.ix.onNotify = func() {
		v.visibleValid = false
		v.notify()
	}
	if err := v.applyReducers(o.filters, o.sort, o.reversed); err != nil {
		return nil, err
	}
	return v, nil
}

// Data returns the live backing slice.
func (v *ArrayView[T]) Data() []T { return v.data }

// SetData replaces the view's contents and forces one index update. With
// replace false the contents are copied into the existing backing array,
// preserving slice identity for callers holding the original reference as
// long as its capacity suffices; growing beyond that capacity reallocates
// and leaves such references on the old, unchanged array. With replace true
// the view adopts data directly.
func (v *ArrayView[T]) SetData(data []T, replace bool) {
	if v.destroyed {
		return
	}
	if replace || v.data == nil {
		v.data = data
	} else {
		v.data = append(v.data[:0], data...)
	}
	v.ix.invalidate()
	v.triggerUpdate(updateOptions{force: true})
}

// VisibleSet returns the set of slice positions currently visible through
// the view as a bitmap. The result is a copy and stays valid across later
// updates.
func (v *ArrayView[T]) VisibleSet() *roaring.Bitmap {
	return v.visibleSet().Clone()
}

// Contains reports whether the slice position is visible through the view.
func (v *ArrayView[T]) Contains(pos int) bool {
	if pos < 0 || pos >= len(v.data) {
		return false
	}
	return v.visibleSet().Contains(uint32(pos))
}

func (v *ArrayView[T]) visibleSet() *roaring.Bitmap {
	if v.visibleValid && v.visible != nil {
		return v.visible
	}
	bm := roaring.New()
	switch {
	case v.destroyed:
	case v.ix.active():
		for _, pos := range v.ix.index {
			bm.Add(uint32(pos))
		}
	default:
		bm.AddRange(0, uint64(len(v.data)))
	}
	v.visible = bm
	v.visibleValid = true
	return bm
}

type arrayHost[T any] struct{ v *ArrayView[T] }

func (h arrayHost[T]) size() int { return len(h.v.data) }

func (h arrayHost[T]) keys(reversed bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := len(h.v.data)
		if reversed {
			for i := n - 1; i >= 0; i-- {
				if !yield(i) {
					return
				}
			}
			return
		}
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func (h arrayHost[T]) lookup(i int) T {
	if i < 0 || i >= len(h.v.data) {
		var zero T
		return zero
	}
	return h.v.data[i]
}

func (h arrayHost[T]) hashKey(i int) uint64 { return uint64(int64(i)) }
