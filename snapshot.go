package dynview

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dynview/dynview/codec"
)

// Compression selects the compression scheme applied to snapshot payloads.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// snapshotMagic identifies a view snapshot. The header stores the codec and
// compression names so readers are self-describing.
var snapshotMagic = [4]byte{'D', 'V', 'W', '1'}

// SaveToWriter writes a snapshot of the backing slice to w using the view's
// configured codec and compression. Filters, comparator and subscriptions
// are runtime state and are not part of the snapshot.
func (v *ArrayView[T]) SaveToWriter(w io.Writer) error {
	start := time.Now()
	err := writeSnapshot(w, v.codec, v.compression, v.data)
	v.metrics.RecordSnapshot(time.Since(start), err)
	v.logger.LogSnapshot("save", v.codec.Name(), string(v.compression), err)
	return err
}

// NewArrayViewFromReader reads a snapshot written by ArrayView.SaveToWriter
// and creates a view over the restored slice. The codec and compression are
// taken from the snapshot header; options configure the new view.
func NewArrayViewFromReader[T any](r io.Reader, optFns ...Option[T]) (*ArrayView[T], error) {
	var data []T
	if err := readSnapshot(r, &data); err != nil {
		return nil, err
	}
	return NewArrayView(data, optFns...)
}

// snapshotPair carries one map entry. Snapshots store pairs as an ordered
// list so the map's insertion order survives the round trip.
type snapshotPair[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// SaveToWriter writes a snapshot of the backing map to w using the view's
// configured codec and compression. Entries are written in insertion order.
func (v *MapView[K, V]) SaveToWriter(w io.Writer) error {
	start := time.Now()
	pairs := make([]snapshotPair[K, V], 0, v.h.size())
	if v.m != nil {
		for p := v.m.Oldest(); p != nil; p = p.Next() {
			pairs = append(pairs, snapshotPair[K, V]{Key: p.Key, Value: p.Value})
		}
	}
	err := writeSnapshot(w, v.codec, v.compression, pairs)
	v.metrics.RecordSnapshot(time.Since(start), err)
	v.logger.LogSnapshot("save", v.codec.Name(), string(v.compression), err)
	return err
}

// NewMapViewFromReader reads a snapshot written by MapView.SaveToWriter and
// creates a view over the restored map, preserving entry order.
func NewMapViewFromReader[K comparable, V any](r io.Reader, optFns ...Option[V]) (*MapView[K, V], error) {
	var pairs []snapshotPair[K, V]
	if err := readSnapshot(r, &pairs); err != nil {
		return nil, err
	}
	m := orderedmap.New[K, V]()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return NewMapView(m, optFns...)
}

func writeSnapshot(w io.Writer, c codec.Codec, comp Compression, payload any) error {
	if comp == "" {
		comp = CompressionNone
	}
	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := writeName(w, c.Name()); err != nil {
		return fmt.Errorf("write codec name: %w", err)
	}
	if err := writeName(w, string(comp)); err != nil {
		return fmt.Errorf("write compression name: %w", err)
	}

	data, err := c.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	switch comp {
	case CompressionNone:
		_, err = w.Write(data)
	case CompressionZstd:
		var enc *zstd.Encoder
		enc, err = zstd.NewWriter(w)
		if err != nil {
			break
		}
		if _, err = enc.Write(data); err != nil {
			enc.Close()
			break
		}
		err = enc.Close()
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err = zw.Write(data); err != nil {
			zw.Close()
			break
		}
		err = zw.Close()
	default:
		return &UnknownCompressionError{Name: string(comp)}
	}
	if err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

func readSnapshot(r io.Reader, out any) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(magic[:], snapshotMagic[:]) {
		return ErrBadSnapshot
	}

	codecName, err := readName(r)
	if err != nil {
		return fmt.Errorf("read codec name: %w", err)
	}
	compName, err := readName(r)
	if err != nil {
		return fmt.Errorf("read compression name: %w", err)
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return &UnknownCodecError{Name: codecName}
	}

	var data []byte
	switch Compression(compName) {
	case CompressionNone:
		data, err = io.ReadAll(r)
	case CompressionZstd:
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(r)
		if err != nil {
			break
		}
		data, err = io.ReadAll(dec.IOReadCloser())
		dec.Close()
	case CompressionLZ4:
		data, err = io.ReadAll(lz4.NewReader(r))
	default:
		return &UnknownCompressionError{Name: compName}
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	if err := c.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func writeName(w io.Writer, name string) error {
	if len(name) > 255 {
		return fmt.Errorf("name too long: %d bytes", len(name))
	}
	if _, err := w.Write([]byte{byte(len(name))}); err != nil {
		return err
	}
	_, err := io.WriteString(w, name)
	return err
}

func readName(r io.Reader) (string, error) {
	var n [1]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", err
	}
	buf := make([]byte, n[0])
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
