package dynview

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordUpdate is called after each index recomputation.
	// notified reports whether subscribers were informed of a change.
	RecordUpdate(duration time.Duration, notified bool)

	// RecordNotify is called when subscribers are notified of a change.
	// subscribers is the number of callbacks invoked.
	RecordNotify(subscribers int)

	// RecordFilterChange is called after the filter registry changes.
	// count is the number of registered filters afterwards.
	RecordFilterChange(count int)

	// RecordSortChange is called after the comparator slot changes.
	RecordSortChange(active bool)

	// RecordSnapshot is called after a snapshot save or load.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordUpdate(time.Duration, bool)    {}
func (NoopMetricsCollector) RecordNotify(int)                    {}
func (NoopMetricsCollector) RecordFilterChange(int)              {}
func (NoopMetricsCollector) RecordSortChange(bool)               {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	UpdateCount      atomic.Int64
	UpdateTotalNanos atomic.Int64
	NotifyCount      atomic.Int64
	NotifiedHandlers atomic.Int64
	FilterChanges    atomic.Int64
	SortChanges      atomic.Int64
	SnapshotCount    atomic.Int64
	SnapshotErrors   atomic.Int64
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, notified bool) {
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
}

// RecordNotify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNotify(subscribers int) {
	b.NotifyCount.Add(1)
	b.NotifiedHandlers.Add(int64(subscribers))
}

// RecordFilterChange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilterChange(count int) {
	b.FilterChanges.Add(1)
}

// RecordSortChange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSortChange(active bool) {
	b.SortChanges.Add(1)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		UpdateCount:      b.UpdateCount.Load(),
		UpdateAvgNanos:   b.getAvgUpdateNanos(),
		NotifyCount:      b.NotifyCount.Load(),
		NotifiedHandlers: b.NotifiedHandlers.Load(),
		FilterChanges:    b.FilterChanges.Load(),
		SortChanges:      b.SortChanges.Load(),
		SnapshotCount:    b.SnapshotCount.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgUpdateNanos() int64 {
	count := b.UpdateCount.Load()
	if count == 0 {
		return 0
	}
	return b.UpdateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	UpdateCount      int64
	UpdateAvgNanos   int64
	NotifyCount      int64
	NotifiedHandlers int64
	FilterChanges    int64
	SortChanges      int64
	SnapshotCount    int64
	SnapshotErrors   int64
}
