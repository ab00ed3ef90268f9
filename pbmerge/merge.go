// Package pbmerge implements protobuf's field-wise merge semantics
// (spec.md §4.8): the primitives generated `merge(a, b) -> t` functions
// compose field-by-field. There is no generator in this repository, so
// unlike pbcodec (which is spec-driven end to end), pbmerge exposes these
// as building blocks rather than a whole-message driver; example/ shows how
// a generated Merge function would call them in spec order.
package pbmerge

import "github.com/mistsys/protospec/pbspec"

// Scalar merges two scalar or enum field values: b overwrites a if b is not
// equal to zero (the proto3 approximation of "b was set on the wire" named
// in spec.md §4.8).
func Scalar[T comparable](a, b T) T {
	var zero T
	if b != zero {
		return b
	}
	return a
}

// Bytes merges two `bytes` field values; []byte isn't comparable so it gets
// its own merge function instead of Scalar.
func Bytes(a, b []byte) []byte {
	if len(b) != 0 {
		return b
	}
	return a
}

// Message merges two optional sub-message fields. If either side is absent
// the other wins outright; if both are present they are recursively merged
// with mergeFn (the sub-message's own generated Merge).
func Message[T any](a, b *T, mergeFn func(a, b T) T) *T {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	m := mergeFn(*a, *b)
	return &m
}

// Repeated merges two repeated fields by concatenation (a ++ b), per
// spec.md §4.8 and property 4 (merge-concat equivalence).
func Repeated[T any](a, b []T) []T {
	if len(a) == 0 {
		return append([]T(nil), b...)
	}
	if len(b) == 0 {
		return append([]T(nil), a...)
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Map merges two map fields: b's entries overwrite a's by key (keeping a's
// position for that key), and new keys from b are appended after a's
// entries in b's order, the same order pbspec.Map's decoder produces for
// the concatenated encodings of a and b.
func Map[K comparable, V any](a, b []pbspec.MapEntry[K, V]) []pbspec.MapEntry[K, V] {
	out := make([]pbspec.MapEntry[K, V], len(a))
	copy(out, a)
	index := make(map[K]int, len(out))
	for i, e := range out {
		index[e.Key] = i
	}
	for _, e := range b {
		if i, ok := index[e.Key]; ok {
			out[i].Value = e.Value
			continue
		}
		index[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}

// Oneof merges two oneof fields: b's set variant replaces a's entirely; if b
// has no variant set (Tag == 0), a is kept.
func Oneof(a, b pbspec.OneofValue) pbspec.OneofValue {
	if b.Tag != 0 {
		return b
	}
	return a
}
