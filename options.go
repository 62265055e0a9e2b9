package dynview

import (
	"log/slog"

	"github.com/dynview/dynview/codec"
)

type options[T any] struct {
	filters     []Filterer[T]
	sort        Comparer[T]
	reversed    bool
	logger      *Logger
	metrics     MetricsCollector
	codec       codec.Codec
	compression Compression
}

// Option configures view construction behavior.
type Option[T any] func(*options[T])

// WithFilters registers filters at construction time, equivalent to calling
// Filters().Add afterwards.
func WithFilters[T any](filters ...Filterer[T]) Option[T] {
	return func(o *options[T]) {
		o.filters = append(o.filters, filters...)
	}
}

// WithSort sets the active comparator at construction time.
func WithSort[T any](c Comparer[T]) Option[T] {
	return func(o *options[T]) {
		o.sort = c
	}
}

// WithReversed sets the initial iteration direction.
func WithReversed[T any](reversed bool) Option[T] {
	return func(o *options[T]) {
		o.reversed = reversed
	}
}

// WithLogger configures structured logging for view operations.
// Pass nil to disable logging.
func WithLogger[T any](logger *Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel[T any](level slog.Level) Option[T] {
	return func(o *options[T]) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetrics configures a metrics collector for view operations.
// Pass nil to disable metrics collection.
func WithMetrics[T any](mc MetricsCollector) Option[T] {
	return func(o *options[T]) {
		o.metrics = mc
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec[T any](c codec.Codec) Option[T] {
	return func(o *options[T]) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression scheme used when writing
// snapshots. Snapshot readers ignore this and follow the file header.
func WithCompression[T any](c Compression) Option[T] {
	return func(o *options[T]) {
		o.compression = c
	}
}

func applyOptions[T any](optFns []Option[T]) options[T] {
	o := options[T]{
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		codec:       codec.Default,
		compression: CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsCollector{}
	}
	return o
}
