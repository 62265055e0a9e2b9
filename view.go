package dynview

import (
	"iter"
	"slices"
	"time"

	"github.com/dynview/dynview/codec"
)

// viewBase carries the machinery shared by ArrayView, MapView and
// DerivedView: the filter registry, the sort slot, the index, the derived
// view registry and the subscriber list.
type viewBase[K comparable, T any] struct {
	h       host[K, T]
	filters FilterSet[T]
	sorter  SortSlot[T]
	ix      indexer[K, T]
	derived DerivedViews[K, T]

	subs      []*subscription
	notifying bool
	renotify  bool

	destroyed bool
	torndown  bool
	detach    func()

	logger      *Logger
	metrics     MetricsCollector
	codec       codec.Codec
	compression Compression
}

type subscription struct {
	fn     func()
	active bool
}

func (vb *viewBase[K, T]) init(h host[K, T], parent *indexer[K, T], logger *Logger, metrics MetricsCollector, c codec.Codec, comp Compression) {
	vb.h = h
	vb.logger = logger
	vb.metrics = metrics
	vb.codec = c
	vb.compression = comp
	vb.derived.owner = vb
	vb.ix = indexer[K, T]{
		host:     h,
		filters:  &vb.filters,
		sorter:   &vb.sorter,
		parent:   parent,
		onNotify: vb.notify,
		forward:  vb.derived.propagate,
	}
	vb.filters.onChange = vb.onFilterChange
	vb.sorter.onChange = vb.onSortChange
}

// applyReducers registers construction-time filters and the comparator.
func (vb *viewBase[K, T]) applyReducers(filters []Filterer[T], sort Comparer[T], reversed bool) error {
	if len(filters) > 0 {
		if err := vb.filters.Add(filters...); err != nil {
			return err
		}
	}
	if sort != nil {
		if err := vb.sorter.Set(sort); err != nil {
			return err
		}
	}
	if reversed {
		vb.SetReversed(true)
	}
	return nil
}

// Filters returns the view's filter registry.
func (vb *viewBase[K, T]) Filters() *FilterSet[T] { return &vb.filters }

// Sort returns the view's sort slot.
func (vb *viewBase[K, T]) Sort() *SortSlot[T] { return &vb.sorter }

// Derived returns the registry of views layered on top of this one.
func (vb *viewBase[K, T]) Derived() *DerivedViews[K, T] { return &vb.derived }

// Reversed reports the current iteration direction.
func (vb *viewBase[K, T]) Reversed() bool { return vb.ix.reversed }

// SetReversed sets the iteration direction and forces an index update.
func (vb *viewBase[K, T]) SetReversed(reversed bool) {
	vb.triggerUpdate(updateOptions{force: true, reversed: &reversed})
}

// Length returns the number of visible entries: the index length while any
// filter or sort is active, otherwise the backing container size. A
// destroyed view reports zero.
func (vb *viewBase[K, T]) Length() int {
	if vb.destroyed {
		return 0
	}
	if vb.ix.active() {
		return vb.ix.length()
	}
	return vb.h.size()
}

// Update recomputes the index and notifies subscribers only if the visible
// set changed. Call it after mutating the backing container in place, since
// direct mutation bypasses the view entirely.
func (vb *viewBase[K, T]) Update() {
	vb.triggerUpdate(updateOptions{})
}

// Subscribe registers fn for change notification. It is invoked once
// synchronously before Subscribe returns, then once per index change. The
// returned unsubscribe function is idempotent. A nil fn is ignored.
func (vb *viewBase[K, T]) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s := &subscription{fn: fn, active: true}
	vb.subs = append(vb.subs, s)
	fn()
	return func() {
		if !s.active {
			return
		}
		s.active = false
		vb.subs = slices.DeleteFunc(vb.subs, func(e *subscription) bool { return e == s })
	}
}

// Keys iterates over the visible keys in view order.
func (vb *viewBase[K, T]) Keys() iter.Seq[K] {
	return vb.keysInOrder()
}

// Values iterates over the visible values in view order.
func (vb *viewBase[K, T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range vb.keysInOrder() {
			if !yield(vb.h.lookup(k)) {
				return
			}
		}
	}
}

// All iterates over the visible key/value pairs in view order.
func (vb *viewBase[K, T]) All() iter.Seq2[K, T] {
	return func(yield func(K, T) bool) {
		for k := range vb.keysInOrder() {
			if !yield(k, vb.h.lookup(k)) {
				return
			}
		}
	}
}

// Destroy tears the view down: derived views are destroyed first, filters
// and the comparator are released, the backing container reference is
// dropped and one terminal notification fires so subscribers observe the
// empty view. Further calls and later mutations are silent no-ops.
func (vb *viewBase[K, T]) Destroy() {
	if vb.destroyed {
		return
	}
	vb.destroyed = true
	vb.logger.LogDestroy(len(vb.subs))
	vb.derived.destroy()
	vb.filters.detachAll()
	vb.sorter.detach()
	if vb.detach != nil {
		vb.detach()
	}
	vb.triggerUpdate(updateOptions{force: true})
	vb.subs = nil
	vb.torndown = true
}

func (vb *viewBase[K, T]) keysInOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		if vb.destroyed {
			return
		}
		if vb.ix.active() {
			// Active with no computed index yet yields nothing.
			idx := vb.ix.index
			if vb.ix.reversed {
				for i := len(idx) - 1; i >= 0; i-- {
					if !yield(idx[i]) {
						return
					}
				}
				return
			}
			for _, k := range idx {
				if !yield(k) {
					return
				}
			}
			return
		}
		for k := range vb.h.keys(vb.ix.reversed) {
			if !yield(k) {
				return
			}
		}
	}
}

func (vb *viewBase[K, T]) triggerUpdate(o updateOptions) {
	if vb.torndown {
		return
	}
	start := time.Now()
	notified := vb.ix.update(o)
	vb.metrics.RecordUpdate(time.Since(start), notified)
	vb.logger.LogUpdate(vb.ix.length(), vb.ix.active(), notified)
}

// notify runs the subscriber list. Updates triggered from inside a handler
// are coalesced into one follow-up pass instead of recursing.
func (vb *viewBase[K, T]) notify() {
	if vb.notifying {
		vb.renotify = true
		return
	}
	vb.notifying = true
	defer func() { vb.notifying = false }()
	for {
		subs := slices.Clone(vb.subs)
		vb.metrics.RecordNotify(len(subs))
		for _, s := range subs {
			if s.active {
				s.fn()
			}
		}
		if !vb.renotify {
			return
		}
		vb.renotify = false
	}
}

func (vb *viewBase[K, T]) onFilterChange() {
	vb.metrics.RecordFilterChange(vb.filters.Len())
	vb.logger.LogFilterChange("update", vb.filters.Len())
	vb.triggerUpdate(updateOptions{force: true})
}

func (vb *viewBase[K, T]) onSortChange() {
	vb.metrics.RecordSortChange(vb.sorter.Active())
	vb.logger.LogSortChange(vb.sorter.Active())
	vb.triggerUpdate(updateOptions{force: true})
}
