package dynview

// Comparer imposes a total ordering on view values.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc adapts a plain comparator function to Comparer.
type CompareFunc[T any] func(a, b T) int

// Compare implements Comparer.
func (f CompareFunc[T]) Compare(a, b T) int { return f(a, b) }

// SortSlot holds the single active comparator of a view.
type SortSlot[T any] struct {
	compare  Comparer[T]
	unsub    func()
	onChange func()
}

// Active reports whether a comparator is set.
func (s *SortSlot[T]) Active() bool { return s.compare != nil }

// Set installs the active comparator, replacing and unsubscribing any
// previous one. Passing nil clears the slot.
//
// A comparator implementing Subscribable is treated as dynamic: the slot
// subscribes and relies on the subscription's initial invocation to trigger
// the index update. A static comparator triggers one forced update
// immediately. Clearing an empty slot is a no-op.
func (s *SortSlot[T]) Set(c Comparer[T]) error {
	if c == nil {
		hadPrevious := s.compare != nil
		s.detach()
		if hadPrevious {
			s.changed()
		}
		return nil
	}
	if cf, ok := c.(CompareFunc[T]); ok && cf == nil {
		return ErrNilCompare
	}

	s.detach()
	s.compare = c

	if sub, ok := c.(Subscribable); ok {
		unsub := sub.Subscribe(s.changed)
		if unsub == nil {
			return ErrNilUnsubscribe
		}
		s.unsub = unsub
		return nil
	}

	s.changed()
	return nil
}

// Clear removes the active comparator, equivalent to Set(nil).
func (s *SortSlot[T]) Clear() {
	_ = s.Set(nil)
}

// detach drops the comparator and its subscription without triggering an
// update.
func (s *SortSlot[T]) detach() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.compare = nil
}

func (s *SortSlot[T]) comparer() Comparer[T] { return s.compare }

func (s *SortSlot[T]) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
