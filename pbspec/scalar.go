// Package pbspec provides the strongly-typed declarative description of a
// message's fields: the scalar TypedSpec constructors and the Compound field
// shapes (Basic, BasicOpt, BasicReq, Repeated, Map, Oneof) that generated
// code (or, here, the hand-written fixtures under example/) builds to hand
// off to pbcodec and pbjson.
package pbspec

import (
	"math"

	"github.com/mistsys/protospec/pbwire"
)

// TypedSpec describes one scalar protobuf type: how to recognize its wire
// field, how to transform it to/from Go type T, and what its proto3 zero
// value is.
type TypedSpec[T any] struct {
	Kind   pbwire.FieldKind
	Decode func(pbwire.WireField) (T, error)
	Encode func(w *pbwire.Writer, v T)
	Zero   func() T
	IsZero func(v T) bool
	// IsMessage marks a spec built by Message/MessageOpt. spec.md's proto3
	// default-elision rule exempts sub-message fields: an explicitly-set
	// all-default message must still be encoded, so Basic/BasicEncode must
	// not elide on IsZero alone when this is set.
	IsMessage bool
}

func zigzagEncode32(v int32) uint32 { return uint32(v<<1) ^ uint32(v>>31) }
func zigzagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }
func zigzagEncode64(v int64) uint64 { return uint64(v<<1) ^ uint64(v>>63) }
func zigzagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }

func wrongKind(have pbwire.FieldKind, want pbwire.FieldKind) error {
	return &WrongFieldTypeError{Expected: want, Actual: have}
}

// Double is the `double` protobuf scalar type: fixed64-framed IEEE 754.
func Double() TypedSpec[float64] {
	return TypedSpec[float64]{
		Kind: pbwire.KindFixed64,
		Decode: func(f pbwire.WireField) (float64, error) {
			if f.Kind != pbwire.KindFixed64 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed64)
			}
			return math.Float64frombits(f.Fixed64), nil
		},
		Encode: func(w *pbwire.Writer, v float64) { w.WriteFixed64(math.Float64bits(v)) },
		Zero:   func() float64 { return 0 },
		IsZero: func(v float64) bool { return v == 0 },
	}
}

// Float is the `float` protobuf scalar type: fixed32-framed IEEE 754.
func Float() TypedSpec[float32] {
	return TypedSpec[float32]{
		Kind: pbwire.KindFixed32,
		Decode: func(f pbwire.WireField) (float32, error) {
			if f.Kind != pbwire.KindFixed32 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed32)
			}
			return math.Float32frombits(f.Fixed32), nil
		},
		Encode: func(w *pbwire.Writer, v float32) { w.WriteFixed32(math.Float32bits(v)) },
		Zero:   func() float32 { return 0 },
		IsZero: func(v float32) bool { return v == 0 },
	}
}

// Int32 is the `int32` protobuf scalar type: varint-framed, sign-extended to
// 64 bits on the wire for negative values (matching protoc's own behavior).
func Int32() TypedSpec[int32] {
	return TypedSpec[int32]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (int32, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return int32(f.Varint), nil
		},
		Encode: func(w *pbwire.Writer, v int32) { w.WriteVarint(uint64(int64(v))) },
		Zero:   func() int32 { return 0 },
		IsZero: func(v int32) bool { return v == 0 },
	}
}

// Int64 is the `int64` protobuf scalar type: varint-framed.
func Int64() TypedSpec[int64] {
	return TypedSpec[int64]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (int64, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return int64(f.Varint), nil
		},
		Encode: func(w *pbwire.Writer, v int64) { w.WriteVarint(uint64(v)) },
		Zero:   func() int64 { return 0 },
		IsZero: func(v int64) bool { return v == 0 },
	}
}

// UInt32 is the `uint32` protobuf scalar type: varint-framed.
func UInt32() TypedSpec[uint32] {
	return TypedSpec[uint32]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (uint32, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return uint32(f.Varint), nil
		},
		Encode: func(w *pbwire.Writer, v uint32) { w.WriteVarint(uint64(v)) },
		Zero:   func() uint32 { return 0 },
		IsZero: func(v uint32) bool { return v == 0 },
	}
}

// UInt64 is the `uint64` protobuf scalar type: varint-framed.
func UInt64() TypedSpec[uint64] {
	return TypedSpec[uint64]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (uint64, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return f.Varint, nil
		},
		Encode: func(w *pbwire.Writer, v uint64) { w.WriteVarint(v) },
		Zero:   func() uint64 { return 0 },
		IsZero: func(v uint64) bool { return v == 0 },
	}
}

// SInt32 is the `sint32` protobuf scalar type: zigzag varint-framed.
func SInt32() TypedSpec[int32] {
	return TypedSpec[int32]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (int32, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return zigzagDecode32(uint32(f.Varint)), nil
		},
		Encode: func(w *pbwire.Writer, v int32) { w.WriteVarint(uint64(zigzagEncode32(v))) },
		Zero:   func() int32 { return 0 },
		IsZero: func(v int32) bool { return v == 0 },
	}
}

// SInt64 is the `sint64` protobuf scalar type: zigzag varint-framed.
func SInt64() TypedSpec[int64] {
	return TypedSpec[int64]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (int64, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return zigzagDecode64(f.Varint), nil
		},
		Encode: func(w *pbwire.Writer, v int64) { w.WriteVarint(zigzagEncode64(v)) },
		Zero:   func() int64 { return 0 },
		IsZero: func(v int64) bool { return v == 0 },
	}
}

// Fixed32 is the `fixed32` protobuf scalar type.
func Fixed32() TypedSpec[uint32] {
	return TypedSpec[uint32]{
		Kind: pbwire.KindFixed32,
		Decode: func(f pbwire.WireField) (uint32, error) {
			if f.Kind != pbwire.KindFixed32 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed32)
			}
			return f.Fixed32, nil
		},
		Encode: func(w *pbwire.Writer, v uint32) { w.WriteFixed32(v) },
		Zero:   func() uint32 { return 0 },
		IsZero: func(v uint32) bool { return v == 0 },
	}
}

// Fixed64 is the `fixed64` protobuf scalar type.
func Fixed64() TypedSpec[uint64] {
	return TypedSpec[uint64]{
		Kind: pbwire.KindFixed64,
		Decode: func(f pbwire.WireField) (uint64, error) {
			if f.Kind != pbwire.KindFixed64 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed64)
			}
			return f.Fixed64, nil
		},
		Encode: func(w *pbwire.Writer, v uint64) { w.WriteFixed64(v) },
		Zero:   func() uint64 { return 0 },
		IsZero: func(v uint64) bool { return v == 0 },
	}
}

// SFixed32 is the `sfixed32` protobuf scalar type: fixed32-framed, two's
// complement (no zigzag).
func SFixed32() TypedSpec[int32] {
	return TypedSpec[int32]{
		Kind: pbwire.KindFixed32,
		Decode: func(f pbwire.WireField) (int32, error) {
			if f.Kind != pbwire.KindFixed32 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed32)
			}
			return int32(f.Fixed32), nil
		},
		Encode: func(w *pbwire.Writer, v int32) { w.WriteFixed32(uint32(v)) },
		Zero:   func() int32 { return 0 },
		IsZero: func(v int32) bool { return v == 0 },
	}
}

// SFixed64 is the `sfixed64` protobuf scalar type: fixed64-framed, two's
// complement (no zigzag).
func SFixed64() TypedSpec[int64] {
	return TypedSpec[int64]{
		Kind: pbwire.KindFixed64,
		Decode: func(f pbwire.WireField) (int64, error) {
			if f.Kind != pbwire.KindFixed64 {
				return 0, wrongKind(f.Kind, pbwire.KindFixed64)
			}
			return int64(f.Fixed64), nil
		},
		Encode: func(w *pbwire.Writer, v int64) { w.WriteFixed64(uint64(v)) },
		Zero:   func() int64 { return 0 },
		IsZero: func(v int64) bool { return v == 0 },
	}
}

// Bool is the `bool` protobuf scalar type.
func Bool() TypedSpec[bool] {
	return TypedSpec[bool]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (bool, error) {
			if f.Kind != pbwire.KindVarint {
				return false, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return f.Varint != 0, nil
		},
		Encode: func(w *pbwire.Writer, v bool) {
			if v {
				w.WriteVarint(1)
			} else {
				w.WriteVarint(0)
			}
		},
		Zero:   func() bool { return false },
		IsZero: func(v bool) bool { return !v },
	}
}

// String is the `string` protobuf scalar type. Malformed UTF-8 is passed
// through unchanged rather than rejected (SPEC_FULL.md §9 open question,
// resolved in DESIGN.md).
func String() TypedSpec[string] {
	return TypedSpec[string]{
		Kind: pbwire.KindLengthDelimited,
		Decode: func(f pbwire.WireField) (string, error) {
			if f.Kind != pbwire.KindLengthDelimited {
				return "", wrongKind(f.Kind, pbwire.KindLengthDelimited)
			}
			return string(f.Bytes()), nil
		},
		Encode: func(w *pbwire.Writer, v string) { w.WriteLengthDelimited([]byte(v)) },
		Zero:   func() string { return "" },
		IsZero: func(v string) bool { return v == "" },
	}
}

// Bytes is the `bytes` protobuf scalar type. The decoded slice is copied out
// of the Reader's backing buffer so the message outlives the input (§5).
func Bytes() TypedSpec[[]byte] {
	return TypedSpec[[]byte]{
		Kind: pbwire.KindLengthDelimited,
		Decode: func(f pbwire.WireField) ([]byte, error) {
			if f.Kind != pbwire.KindLengthDelimited {
				return nil, wrongKind(f.Kind, pbwire.KindLengthDelimited)
			}
			src := f.Bytes()
			out := make([]byte, len(src))
			copy(out, src)
			return out, nil
		},
		Encode: func(w *pbwire.Writer, v []byte) { w.WriteLengthDelimited(v) },
		Zero:   func() []byte { return nil },
		IsZero: func(v []byte) bool { return len(v) == 0 },
	}
}

// Enum builds the TypedSpec for an enum type whose underlying representation
// is int32, given a decoder from wire integer to T; encoding writes T's
// int32 value as a sign-extended varint.
// UnknownEnumValueError is returned by decode for unrecognized values;
// generated enum decoders may instead choose to preserve the integer by
// defining T as a named int32 type with an always-succeeding decode.
func Enum[T ~int32](decode func(int32) (T, error)) TypedSpec[T] {
	return TypedSpec[T]{
		Kind: pbwire.KindVarint,
		Decode: func(f pbwire.WireField) (T, error) {
			if f.Kind != pbwire.KindVarint {
				return 0, wrongKind(f.Kind, pbwire.KindVarint)
			}
			return decode(int32(f.Varint))
		},
		Encode: func(w *pbwire.Writer, v T) { w.WriteVarint(uint64(int64(int32(v)))) },
		Zero:   func() T { return 0 },
		IsZero: func(v T) bool { return v == 0 },
	}
}

// Message builds the TypedSpec for a required/always-present sub-message
// field, given its from-Reader decoder and to-Writer encoder.
func Message[T any](decode func(*pbwire.Reader) (T, error), encode func(*pbwire.Writer, T), isZero func(T) bool) TypedSpec[T] {
	return TypedSpec[T]{
		Kind: pbwire.KindLengthDelimited,
		Decode: func(f pbwire.WireField) (T, error) {
			var zero T
			if f.Kind != pbwire.KindLengthDelimited {
				return zero, wrongKind(f.Kind, pbwire.KindLengthDelimited)
			}
			return decode(pbwire.NewReader(f.Bytes()))
		},
		Encode: func(w *pbwire.Writer, v T) {
			sub := pbwire.NewWriter(pbwire.Balanced)
			encode(sub, v)
			w.WriteLengthDelimited(sub.Contents())
		},
		Zero:      func() T { var z T; return z },
		IsZero:    isZero,
		IsMessage: true,
	}
}

// MessageOpt builds the TypedSpec for an optional sub-message field, T a
// pointer type. Absence is represented by nil and is always the "default".
func MessageOpt[T any](decode func(*pbwire.Reader) (*T, error), encode func(*pbwire.Writer, *T)) TypedSpec[*T] {
	return TypedSpec[*T]{
		Kind: pbwire.KindLengthDelimited,
		Decode: func(f pbwire.WireField) (*T, error) {
			if f.Kind != pbwire.KindLengthDelimited {
				return nil, wrongKind(f.Kind, pbwire.KindLengthDelimited)
			}
			return decode(pbwire.NewReader(f.Bytes()))
		},
		Encode: func(w *pbwire.Writer, v *T) {
			sub := pbwire.NewWriter(pbwire.Balanced)
			encode(sub, v)
			w.WriteLengthDelimited(sub.Contents())
		},
		Zero:   func() *T { return nil },
		IsZero: func(v *T) bool { return v == nil },
	}
}

// WrongFieldTypeError is returned when a wire field's kind doesn't match
// what a TypedSpec expected.
type WrongFieldTypeError struct {
	Expected pbwire.FieldKind
	Actual   pbwire.FieldKind
}

func (e *WrongFieldTypeError) Error() string {
	return "pbspec: wrong field type: expected " + e.Expected.String() + ", got " + e.Actual.String()
}

// UnknownEnumValueError is returned by an Enum decoder for an out-of-range
// integer value.
type UnknownEnumValueError struct {
	Value int32
}

func (e *UnknownEnumValueError) Error() string {
	return "pbspec: unknown enum value"
}
