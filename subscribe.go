package dynview

import "slices"

// Subscribable is the optional capability implemented by filters and
// comparators that can change on their own. A view detects it at
// registration time and keeps its index in sync without explicit Update
// calls.
//
// Contract: Subscribe must invoke onChange once synchronously before
// returning (so the current state takes effect immediately), then once per
// subsequent change, and must return a non-nil unsubscribe function.
type Subscribable interface {
	Subscribe(onChange func()) (unsubscribe func())
}

// changeListeners implements the Subscribable bookkeeping shared by the
// built-in dynamic filter and comparator helpers.
type changeListeners struct {
	entries []*listenerEntry
}

type listenerEntry struct {
	fn     func()
	active bool
}

func (c *changeListeners) subscribe(onChange func()) (unsubscribe func()) {
	if onChange == nil {
		return func() {}
	}
	e := &listenerEntry{fn: onChange, active: true}
	c.entries = append(c.entries, e)
	onChange()
	return func() {
		if !e.active {
			return
		}
		e.active = false
		c.entries = slices.DeleteFunc(c.entries, func(x *listenerEntry) bool { return x == e })
	}
}

func (c *changeListeners) notify() {
	for _, e := range slices.Clone(c.entries) {
		if e.active {
			e.fn()
		}
	}
}
