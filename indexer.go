package dynview

import (
	"iter"
	"slices"

	"github.com/dynview/dynview/internal/hashing"
)

// host abstracts the backing container a view reduces over. Keys are slice
// positions for ArrayView and map keys for MapView.
type host[K comparable, T any] interface {
	size() int
	keys(reversed bool) iter.Seq[K]
	lookup(k K) T
	hashKey(k K) uint64
}

// updateOptions carries per-update modifiers through the view and into the
// derived propagation chain.
type updateOptions struct {
	// force bypasses hash-based change detection and always notifies.
	force bool
	// reversed, when non-nil, sets the iteration direction before reducing.
	reversed *bool
}

// indexer maintains the reduced key index of one view. A nil index means the
// view is passing the container through untouched (or, while filters are
// active, that nothing has been computed yet).
type indexer[K comparable, T any] struct {
	host    host[K, T]
	filters *FilterSet[T]
	sorter  *SortSlot[T]
	parent  *indexer[K, T]

	index    []K
	hash     uint64
	hashed   bool
	reversed bool

	onNotify func()
	forward  func(o updateOptions)
}

// active reports whether this view, or any ancestor, reduces the container.
func (ix *indexer[K, T]) active() bool {
	return ix.filters.Len() > 0 || ix.sorter.Active() ||
		(ix.parent != nil && ix.parent.active())
}

func (ix *indexer[K, T]) length() int { return len(ix.index) }

// invalidate drops the index so the next update recomputes from scratch
// instead of diffing against stale positions.
func (ix *indexer[K, T]) invalidate() { ix.index = nil }

// update recomputes the index and reports whether subscribers were notified.
// Notification fires when forced or when the index hash (with a full
// element-wise comparison as tie-breaker) differs from the previous run.
// Derived views always receive the update regardless of the outcome here.
func (ix *indexer[K, T]) update(o updateOptions) (notified bool) {
	force := o.force
	if o.reversed != nil && *o.reversed != ix.reversed {
		ix.reversed = *o.reversed
		force = true
	}

	oldIndex := ix.index
	oldHash, oldHashed := ix.hash, ix.hashed

	if (ix.filters.Len() == 0 && !ix.sorter.Active()) ||
		(ix.index != nil && len(ix.index) != ix.host.size()) {
		ix.index = nil
	}

	var parentIndex []K
	parentActive := false
	if ix.parent != nil {
		parentIndex = ix.parent.index
		parentActive = ix.parent.active()
	}

	rebuilt := false
	if ix.filters.Len() > 0 {
		ix.index = ix.reduce(parentIndex, parentActive)
		rebuilt = true
	}

	// An unfiltered view layered over an active parent mirrors the parent's
	// visible set so a local sort starts from the parent's order.
	if ix.index == nil && parentIndex != nil && parentActive {
		ix.index = slices.Clone(parentIndex)
		rebuilt = true
	}

	if cmp := ix.sorter.comparer(); cmp != nil {
		// Sorting always starts from a fresh sequence. Reusing the cached
		// index here would freeze the previous sorted order once the
		// comparator turns neutral, instead of restoring container order.
		if !rebuilt {
			ix.index = slices.Collect(ix.host.keys(false))
		}
		slices.SortStableFunc(ix.index, func(a, b K) int {
			return cmp.Compare(ix.host.lookup(a), ix.host.lookup(b))
		})
	}

	ix.hash, ix.hashed = 0, false
	if ix.index != nil {
		var h uint64
		for _, k := range ix.index {
			h = hashing.Fold(h, ix.host.hashKey(k))
		}
		ix.hash, ix.hashed = h, true
	}

	notified = force ||
		oldHashed != ix.hashed ||
		oldHash != ix.hash ||
		!slices.Equal(oldIndex, ix.index)
	if notified && ix.onNotify != nil {
		ix.onNotify()
	}

	if ix.forward != nil {
		ix.forward(o)
	}
	return notified
}

func (ix *indexer[K, T]) reduce(parentIndex []K, parentActive bool) []K {
	out := make([]K, 0, ix.host.size())
	if parentIndex != nil && parentActive {
		for _, k := range parentIndex {
			if ix.filters.accepts(ix.host.lookup(k)) {
				out = append(out, k)
			}
		}
		return out
	}
	for k := range ix.host.keys(false) {
		if ix.filters.accepts(ix.host.lookup(k)) {
			out = append(out, k)
		}
	}
	return out
}
