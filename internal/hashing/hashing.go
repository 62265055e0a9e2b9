package hashing

import "math"

// golden is the 32-bit golden-ratio constant used by the fold mix.
const golden = 0x9e3779b9

// Fold mixes elem into h. The mix is order-sensitive: folding the same
// elements in a different order yields a different result.
func Fold(h, elem uint64) uint64 {
	return h ^ (elem + golden + (h << 6) + (h >> 2))
}

// String hashes s into a 53-bit value using two interleaved 32-bit
// accumulators that are cross-folded in the finalizer.
func String(s string) uint64 {
	h1 := uint32(0xdeadbeef)
	h2 := uint32(0x41c6ce57)

	for _, r := range s {
		c := uint32(r)
		h1 = (h1 ^ c) * 2654435761
		h2 = (h2 ^ c) * 1597334677
	}

	h1 = (h1^(h1>>16))*2246822507 ^ (h2^(h2>>13))*3266489909
	h2 = (h2^(h2>>16))*2246822507 ^ (h1^(h1>>13))*3266489909

	return uint64(h2&0x1fffff)<<32 + uint64(h1)
}

// Key hashes an arbitrary container key. Unsupported types contribute 0.
func Key(k any) uint64 {
	switch v := k.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return uint64(int64(v))
	case int8:
		return uint64(int64(v))
	case int16:
		return uint64(int64(v))
	case int32:
		return uint64(int64(v))
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case uintptr:
		return uint64(v)
	case float32:
		return floatKey(float64(v))
	case float64:
		return floatKey(v)
	case string:
		return String(v)
	default:
		return 0
	}
}

func floatKey(f float64) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint64(int64(f))
}

// Index computes the order-sensitive hash of an index slice.
func Index[K comparable](keys []K) uint64 {
	var h uint64
	for _, k := range keys {
		h = Fold(h, Key(k))
	}
	return h
}
