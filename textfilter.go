package dynview

import (
	"fmt"
	"regexp"
)

// TextFilter is a dynamic filter matching a case-insensitive text query
// against a string projection of each value. It implements Subscribable, so
// a view it is registered on re-indexes on every Set call.
//
// An empty query matches everything.
type TextFilter[T any] struct {
	extract   func(T) string
	query     string
	re        *regexp.Regexp
	listeners changeListeners
}

// NewTextFilter creates a text filter projecting values through extract.
// A nil extract falls back to fmt.Sprint.
func NewTextFilter[T any](extract func(T) string) *TextFilter[T] {
	if extract == nil {
		extract = func(v T) string { return fmt.Sprint(v) }
	}
	return &TextFilter[T]{extract: extract}
}

// Set updates the query and notifies listeners. Setting the current query
// again is a no-op.
func (f *TextFilter[T]) Set(query string) {
	if query == f.query {
		return
	}
	f.query = query
	if query == "" {
		f.re = nil
	} else {
		f.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	f.listeners.notify()
}

// Query returns the current query.
func (f *TextFilter[T]) Query() string { return f.query }

// Filter implements Filterer.
func (f *TextFilter[T]) Filter(v T) bool {
	if f.re == nil {
		return true
	}
	return f.re.MatchString(f.extract(v))
}

// Subscribe implements Subscribable.
func (f *TextFilter[T]) Subscribe(onChange func()) (unsubscribe func()) {
	return f.listeners.subscribe(onChange)
}
