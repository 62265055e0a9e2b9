package dynview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	t.Run("CountsViewOperations", func(t *testing.T) {
		collector := &BasicMetricsCollector{}
		v, err := NewArrayView([]int{1, 2, 3, 4}, WithMetrics[int](collector))
		require.NoError(t, err)

		v.Subscribe(func() {})
		require.NoError(t, v.Filters().Add(FilterFunc[int](func(n int) bool { return n > 1 })))
		require.NoError(t, v.Sort().Set(CompareFunc[int](func(a, b int) int { return b - a })))

		stats := collector.GetStats()
		assert.Equal(t, int64(1), stats.FilterChanges)
		assert.Equal(t, int64(1), stats.SortChanges)
		assert.GreaterOrEqual(t, stats.UpdateCount, int64(2))
		assert.GreaterOrEqual(t, stats.NotifyCount, int64(2))
		assert.GreaterOrEqual(t, stats.NotifiedHandlers, int64(2))
	})

	t.Run("CountsSnapshots", func(t *testing.T) {
		collector := &BasicMetricsCollector{}
		v, err := NewArrayView([]int{1, 2}, WithMetrics[int](collector))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		stats := collector.GetStats()
		assert.Equal(t, int64(1), stats.SnapshotCount)
		assert.Zero(t, stats.SnapshotErrors)
	})

	t.Run("CountsSnapshotErrors", func(t *testing.T) {
		collector := &BasicMetricsCollector{}
		v, err := NewArrayView([]int{1}, WithMetrics[int](collector))
		require.NoError(t, err)

		require.Error(t, v.SaveToWriter(failingWriter{}))
		assert.Equal(t, int64(1), collector.GetStats().SnapshotErrors)
	})

	t.Run("EmptyStats", func(t *testing.T) {
		collector := &BasicMetricsCollector{}
		stats := collector.GetStats()
		assert.Zero(t, stats.UpdateCount)
		assert.Zero(t, stats.UpdateAvgNanos)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
