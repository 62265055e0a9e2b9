package dynview

import (
	"errors"
	"fmt"
)

var (
	// ErrNilData is returned when a nil backing container is supplied.
	ErrNilData = errors.New("dynview: data must not be nil")

	// ErrNilFilter is returned when a nil filter is registered.
	ErrNilFilter = errors.New("dynview: filter must not be nil")

	// ErrNilCompare is returned when a nil comparator function is set.
	ErrNilCompare = errors.New("dynview: comparator must not be nil")

	// ErrDuplicateFilter is returned when a subscribable filter that already
	// holds an active subscription is added again.
	ErrDuplicateFilter = errors.New("dynview: filter already registered with an active subscription")

	// ErrNilUnsubscribe is returned when a Subscribable returns a nil
	// unsubscribe function, violating the subscription contract.
	ErrNilUnsubscribe = errors.New("dynview: subscribable returned a nil unsubscribe")

	// ErrDestroyed is returned by constructive operations on a destroyed
	// instance. Mutating but harmless calls are silent no-ops instead.
	ErrDestroyed = errors.New("dynview: instance has been destroyed")

	// ErrMissingName is returned when a derived view is created without a name.
	ErrMissingName = errors.New("dynview: derived view requires a name")

	// ErrBadSnapshot is returned when snapshot data is truncated or malformed.
	ErrBadSnapshot = errors.New("dynview: malformed snapshot")
)

// InvalidWeightError indicates a filter weight outside the closed range [0, 1].
type InvalidWeightError struct {
	Weight float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("dynview: filter weight %v outside [0, 1]", e.Weight)
}

// UnknownCodecError indicates a snapshot header naming a codec this build
// does not provide.
type UnknownCodecError struct {
	Name string
}

func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("dynview: unknown snapshot codec %q", e.Name)
}

// UnknownCompressionError indicates a snapshot header naming an unsupported
// compression scheme.
type UnknownCompressionError struct {
	Name string
}

func (e *UnknownCompressionError) Error() string {
	return fmt.Sprintf("dynview: unknown snapshot compression %q", e.Name)
}
