package dynview

// Order is the direction state of a sortable key.
type Order int8

const (
	OrderNone Order = iota
	OrderAsc
	OrderDesc
)

func (o Order) String() string {
	switch o {
	case OrderAsc:
		return "asc"
	case OrderDesc:
		return "desc"
	default:
		return "none"
	}
}

// KeySort is a dynamic comparator for column-style sorting. Comparators are
// registered per key; Toggle cycles the active key through ascending,
// descending and off, the way clicking a table header usually behaves. It
// implements Subscribable, so a view it is set on re-sorts on every Toggle.
type KeySort[T any] struct {
	compares  map[string]CompareFunc[T]
	active    string
	order     Order
	listeners changeListeners
}

// NewKeySort creates an empty key sort with no active key.
func NewKeySort[T any]() *KeySort[T] {
	return &KeySort[T]{compares: make(map[string]CompareFunc[T])}
}

// Register associates a comparator with a key, replacing any previous one.
func (s *KeySort[T]) Register(key string, cmp CompareFunc[T]) error {
	if cmp == nil {
		return ErrNilCompare
	}
	s.compares[key] = cmp
	return nil
}

// Toggle advances the direction of key and returns the new state. Toggling
// the active key cycles ascending, descending, off; toggling a different key
// makes it active ascending.
func (s *KeySort[T]) Toggle(key string) Order {
	if key != s.active {
		s.active = key
		s.order = OrderAsc
	} else {
		switch s.order {
		case OrderNone:
			s.order = OrderAsc
		case OrderAsc:
			s.order = OrderDesc
		default:
			s.order = OrderNone
		}
	}
	s.listeners.notify()
	return s.order
}

// State returns the active key and its direction.
func (s *KeySort[T]) State() (key string, order Order) {
	return s.active, s.order
}

// Compare implements Comparer. With no active key, or a key without a
// registered comparator, all values compare equal, which keeps the view in
// its natural order under a stable sort.
func (s *KeySort[T]) Compare(a, b T) int {
	if s.order == OrderNone {
		return 0
	}
	cmp := s.compares[s.active]
	if cmp == nil {
		return 0
	}
	r := cmp(a, b)
	if s.order == OrderDesc {
		return -r
	}
	return r
}

// Subscribe implements Subscribable.
func (s *KeySort[T]) Subscribe(onChange func()) (unsubscribe func()) {
	return s.listeners.subscribe(onChange)
}
