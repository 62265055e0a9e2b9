package dynview

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynview/dynview/codec"
)

func TestArrayViewSnapshot(t *testing.T) {
	compressions := []Compression{CompressionNone, CompressionZstd, CompressionLZ4}

	for _, comp := range compressions {
		t.Run(string(comp), func(t *testing.T) {
			v, err := NewArrayView([]int{5, 3, 8, 1}, WithCompression[int](comp))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, v.SaveToWriter(&buf))

			restored, err := NewArrayViewFromReader[int](&buf)
			require.NoError(t, err)
			assert.Equal(t, []int{5, 3, 8, 1}, restored.Data())
		})
	}

	t.Run("StdlibCodec", func(t *testing.T) {
		v, err := NewArrayView([]string{"a", "b"}, WithCodec[string](codec.JSON{}))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		restored, err := NewArrayViewFromReader[string](&buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, restored.Data())
	})

	t.Run("RestoredViewReduces", func(t *testing.T) {
		v, err := NewArrayView([]int{5, 3, 8, 1})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		restored, err := NewArrayViewFromReader(&buf,
			WithFilters(FilterFunc[int](func(n int) bool { return n > 2 })),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 3, 8}, slices.Collect(restored.Values()))
	})

	t.Run("BadMagic", func(t *testing.T) {
		_, err := NewArrayViewFromReader[int](bytes.NewReader([]byte("nope nope nope")))
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := NewArrayViewFromReader[int](bytes.NewReader([]byte("DV")))
		assert.Error(t, err)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		var buf bytes.Buffer
		buf.Write(snapshotMagic[:])
		buf.WriteByte(4)
		buf.WriteString("gzip")
		buf.WriteByte(4)
		buf.WriteString("none")

		var codecErr *UnknownCodecError
		_, err := NewArrayViewFromReader[int](&buf)
		require.ErrorAs(t, err, &codecErr)
		assert.Equal(t, "gzip", codecErr.Name)
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		var buf bytes.Buffer
		buf.Write(snapshotMagic[:])
		buf.WriteByte(4)
		buf.WriteString("json")
		buf.WriteByte(6)
		buf.WriteString("snappy")

		var compErr *UnknownCompressionError
		_, err := NewArrayViewFromReader[int](&buf)
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, "snappy", compErr.Name)
	})
}

func TestMapViewSnapshot(t *testing.T) {
	t.Run("PreservesInsertionOrder", func(t *testing.T) {
		v, err := NewMapView(orderedFrom(pair("c", 3), pair("a", 1), pair("b", 2)))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		restored, err := NewMapViewFromReader[string, int](&buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, slices.Collect(restored.Keys()))
		assert.Equal(t, []int{3, 1, 2}, slices.Collect(restored.Values()))
	})

	t.Run("Compressed", func(t *testing.T) {
		v, err := NewMapView(orderedFrom(pair("a", 1), pair("b", 2)),
			WithCompression[int](CompressionZstd),
		)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		restored, err := NewMapViewFromReader[string, int](&buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, slices.Collect(restored.Keys()))
	})

	t.Run("StructValues", func(t *testing.T) {
		type person struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}
		v, err := NewMapView(orderedFrom(
			pair("p1", person{Name: "Ada", Age: 36}),
			pair("p2", person{Name: "Alan", Age: 41}),
		))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, v.SaveToWriter(&buf))

		restored, err := NewMapViewFromReader[string, person](&buf)
		require.NoError(t, err)
		got, ok := restored.Data().Get("p1")
		require.True(t, ok)
		assert.Equal(t, person{Name: "Ada", Age: 36}, got)
	})
}
