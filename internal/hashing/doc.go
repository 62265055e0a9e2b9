// Package hashing provides the order-sensitive index hashing used for
// change detection.
//
// A view's index (the ordered list of visible container keys) is reduced to a
// single 64-bit value by XOR-folding a per-key hash with a golden-ratio mix.
// Two indexes with the same keys in the same order always produce the same
// hash; reordering or replacing keys changes it with overwhelming
// probability. Change notifications compare hashes first and fall back to an
// element-wise comparison on the rare collision.
//
// Key hashing is type-aware: booleans map to 0/1, integer and float kinds to
// their (finite) value, strings to a 53-bit hash built from two interleaved
// 32-bit multiplicative accumulators. Unsupported key types contribute 0,
// degrading collision resistance but never failing.
package hashing
