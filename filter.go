package dynview

import (
	"iter"
	"math"
	"reflect"
	"slices"
)

// Filterer decides whether a value is visible through a view.
type Filterer[T any] interface {
	Filter(value T) bool
}

// FilterFunc adapts a plain predicate function to Filterer.
type FilterFunc[T any] func(value T) bool

// Filter implements Filterer.
func (f FilterFunc[T]) Filter(v T) bool { return f(v) }

// FilterEntry is the registered form of a filter as reported by Entries.
type FilterEntry[T any] struct {
	ID       string
	Weight   float64
	Filterer Filterer[T]
}

// Weighted wraps a filter with an identifier and an evaluation weight in
// [0, 1]. Filters evaluate in ascending weight order; ties keep insertion
// order. Plain filters default to weight 1.
func Weighted[T any](id string, weight float64, f Filterer[T]) Filterer[T] {
	return &weightedFilter[T]{id: id, weight: weight, f: f}
}

type weightedFilter[T any] struct {
	id     string
	weight float64
	f      Filterer[T]
}

func (w *weightedFilter[T]) Filter(v T) bool { return w.f.Filter(v) }

type filterEntry[T any] struct {
	id     string
	weight float64
	f      Filterer[T]
	unsub  func()
}

// FilterSet is an ordered registry of weighted filters owned by a view.
// Mutations synchronously recompute the owning view's index.
type FilterSet[T any] struct {
	entries  []*filterEntry[T]
	onChange func()
}

// Len returns the number of registered filters.
func (fs *FilterSet[T]) Len() int { return len(fs.entries) }

// Add registers filters, inserting each at the first position whose weight
// is strictly greater so that evaluation stays in ascending weight order.
//
// A filter implementing Subscribable is treated as dynamic: the set
// subscribes immediately and relies on the subscription's initial invocation
// to take effect. Registering a dynamic filter that already holds an active
// subscription fails with ErrDuplicateFilter. If at least one added filter
// was static, one forced index update runs after the batch.
func (fs *FilterSet[T]) Add(filters ...Filterer[T]) error {
	allDynamic := len(filters) > 0
	added := false

	for _, f := range filters {
		entry, err := makeFilterEntry(f)
		if err != nil {
			return err
		}

		sub, dynamic := entry.f.(Subscribable)
		if dynamic && fs.hasActiveSubscription(entry.f) {
			return ErrDuplicateFilter
		}

		fs.insert(entry)
		added = true

		if dynamic {
			unsub := sub.Subscribe(fs.changed)
			if unsub == nil {
				return ErrNilUnsubscribe
			}
			entry.unsub = unsub
		} else {
			allDynamic = false
		}
	}

	if added && !allDynamic {
		fs.changed()
	}
	return nil
}

// Remove removes filters by identity, releasing any dynamic subscription.
// One forced index update runs if the filter count changed.
func (fs *FilterSet[T]) Remove(filters ...Filterer[T]) {
	before := len(fs.entries)
	for _, f := range filters {
		_, _, src := unwrapFilter(f)
		if src == nil {
			continue
		}
		fs.entries = slices.DeleteFunc(fs.entries, func(e *filterEntry[T]) bool {
			if !sameFilterer(e.f, src) {
				return false
			}
			e.release()
			return true
		})
	}
	if len(fs.entries) != before {
		fs.changed()
	}
}

// RemoveByID removes all filters registered under the given identifiers.
func (fs *FilterSet[T]) RemoveByID(ids ...string) {
	before := len(fs.entries)
	fs.entries = slices.DeleteFunc(fs.entries, func(e *filterEntry[T]) bool {
		if !slices.Contains(ids, e.id) {
			return false
		}
		e.release()
		return true
	})
	if len(fs.entries) != before {
		fs.changed()
	}
}

// RemoveBy removes all filters for which fn returns true.
func (fs *FilterSet[T]) RemoveBy(fn func(entry FilterEntry[T]) bool) error {
	if fn == nil {
		return ErrNilFilter
	}
	before := len(fs.entries)
	fs.entries = slices.DeleteFunc(fs.entries, func(e *filterEntry[T]) bool {
		if !fn(FilterEntry[T]{ID: e.id, Weight: e.weight, Filterer: e.f}) {
			return false
		}
		e.release()
		return true
	})
	if len(fs.entries) != before {
		fs.changed()
	}
	return nil
}

// Clear removes all filters and unconditionally forces an index update.
func (fs *FilterSet[T]) Clear() {
	fs.detachAll()
	fs.changed()
}

// Entries iterates over copies of the registered filters in evaluation order.
func (fs *FilterSet[T]) Entries() iter.Seq[FilterEntry[T]] {
	return func(yield func(FilterEntry[T]) bool) {
		for _, e := range fs.entries {
			if !yield(FilterEntry[T]{ID: e.id, Weight: e.weight, Filterer: e.f}) {
				return
			}
		}
	}
}

// detachAll releases every entry without triggering an update.
func (fs *FilterSet[T]) detachAll() {
	for _, e := range fs.entries {
		e.release()
	}
	fs.entries = nil
}

func (fs *FilterSet[T]) insert(entry *filterEntry[T]) {
	pos := len(fs.entries)
	for i, e := range fs.entries {
		if e.weight > entry.weight {
			pos = i
			break
		}
	}
	fs.entries = slices.Insert(fs.entries, pos, entry)
}

func (fs *FilterSet[T]) hasActiveSubscription(src Filterer[T]) bool {
	for _, e := range fs.entries {
		if e.unsub != nil && sameFilterer(e.f, src) {
			return true
		}
	}
	return false
}

// accepts reports whether every filter passes for the value, evaluated in
// ascending weight order with short-circuit on the first rejection.
func (fs *FilterSet[T]) accepts(v T) bool {
	for _, e := range fs.entries {
		if !e.f.Filter(v) {
			return false
		}
	}
	return true
}

func (fs *FilterSet[T]) changed() {
	if fs.onChange != nil {
		fs.onChange()
	}
}

func (e *filterEntry[T]) release() {
	if e.unsub != nil {
		e.unsub()
		e.unsub = nil
	}
}

func makeFilterEntry[T any](f Filterer[T]) (*filterEntry[T], error) {
	id, weight, src := unwrapFilter(f)
	if src == nil {
		return nil, ErrNilFilter
	}
	if ff, ok := src.(FilterFunc[T]); ok && ff == nil {
		return nil, ErrNilFilter
	}
	if weight < 0 || weight > 1 || math.IsNaN(weight) {
		return nil, &InvalidWeightError{Weight: weight}
	}
	return &filterEntry[T]{id: id, weight: weight, f: src}, nil
}

func unwrapFilter[T any](f Filterer[T]) (id string, weight float64, src Filterer[T]) {
	if wf, ok := f.(*weightedFilter[T]); ok {
		return wf.id, wf.weight, wf.f
	}
	return "", 1, f
}

// sameFilterer compares filters by identity. Comparable implementations
// (pointers, comparable structs) compare directly; function-typed filters
// compare by code pointer.
func sameFilterer[T any](a, b Filterer[T]) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}
