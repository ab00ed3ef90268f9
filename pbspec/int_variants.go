package pbspec

import "github.com/mistsys/protospec/pbwire"

// Int64Int, Int32Int, UInt64Int, UInt32Int, SInt64Int, SInt32Int, Fixed64Int,
// Fixed32Int, SFixed64Int, SFixed32Int are the "_int" variants named in
// SPEC_FULL.md §6.1: they deliver the decoded value as Go's native `int`
// instead of a fixed-width integer type, for generators configured with
// int64_as_int/int32_as_int/fixed_as_int. They are thin reframings of the
// corresponding fixed-width TypedSpec and carry the same wire Kind.

func Int64Int() TypedSpec[int]   { return reframe(Int64()) }
func Int32Int() TypedSpec[int]   { return reframe(Int32()) }
func UInt64Int() TypedSpec[int]  { return reframe(UInt64()) }
func UInt32Int() TypedSpec[int]  { return reframe(UInt32()) }
func SInt64Int() TypedSpec[int]  { return reframe(SInt64()) }
func SInt32Int() TypedSpec[int]  { return reframe(SInt32()) }
func Fixed64Int() TypedSpec[int] { return reframe(Fixed64()) }
func Fixed32Int() TypedSpec[int] { return reframe(Fixed32()) }
func SFixed64Int() TypedSpec[int] { return reframe(SFixed64()) }
func SFixed32Int() TypedSpec[int] { return reframe(SFixed32()) }

// reframe rewraps a fixed-width numeric TypedSpec as one producing/consuming
// Go's native int. T is constrained to the numeric kinds TypedSpec is ever
// built over in this package.
func reframe[T int32 | int64 | uint32 | uint64](src TypedSpec[T]) TypedSpec[int] {
	return TypedSpec[int]{
		Kind: src.Kind,
		Decode: func(f pbwire.WireField) (int, error) {
			v, err := src.Decode(f)
			return int(v), err
		},
		Encode: func(w *pbwire.Writer, v int) { src.Encode(w, T(v)) },
		Zero:   func() int { return 0 },
		IsZero: func(v int) bool { return v == 0 },
	}
}
