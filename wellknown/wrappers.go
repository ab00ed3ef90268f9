package wellknown

import (
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
)

// Wrapper is the shape shared by all nine google.protobuf.*Value wrapper
// types: a single `value` field, serialized in JSON as the bare scalar
// rather than as a one-field object (spec.md §4.6).
type Wrapper[T any] struct {
	Value T
}

// WrapperDecodeShape builds the ordinary one-field binary decode spec for a
// wrapper type over scalar.
func WrapperDecodeShape[T any](scalar pbspec.TypedSpec[T]) pbcodec.Shape[Wrapper[T]] {
	return pbcodec.Shape[Wrapper[T]]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "value", scalar, pbspec.Proto3[T]()),
		},
		Build: func(vals []any) (Wrapper[T], error) {
			return Wrapper[T]{Value: vals[0].(T)}, nil
		},
	}
}

// WrapperEncodeShape builds the ordinary one-field binary encode spec for a
// wrapper type over scalar.
func WrapperEncodeShape[T any](scalar pbspec.TypedSpec[T]) pbcodec.EncodeShape[Wrapper[T]] {
	return pbcodec.EncodeShape[Wrapper[T]]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Wrapper[T]]{
			pbspec.BasicEncode(1, scalar, pbspec.Proto3[T](), func(w Wrapper[T]) T { return w.Value }),
		},
	}
}

// WrapperJSON builds the pbjson.WellKnownHooks shared by all wrapper types:
// the bare scalar in place of the {"value": ...} object.
func WrapperJSON[T any](scalar pbjson.Scalar[T]) *pbjson.WellKnownHooks[Wrapper[T]] {
	return &pbjson.WellKnownHooks[Wrapper[T]]{
		Wrap: func(w Wrapper[T]) (any, error) { return scalar.ToJSON(w.Value), nil },
		Unwrap: func(v any) (Wrapper[T], error) {
			val, err := scalar.FromJSON(v)
			return Wrapper[T]{Value: val}, err
		},
	}
}

// The nine well-known wrapper types, each Wrapper[T] specialized to its
// scalar and paired with its binary/JSON shape constructors.
type (
	DoubleValue = Wrapper[float64]
	FloatValue  = Wrapper[float32]
	Int64Value  = Wrapper[int64]
	UInt64Value = Wrapper[uint64]
	Int32Value  = Wrapper[int32]
	UInt32Value = Wrapper[uint32]
	BoolValue   = Wrapper[bool]
	StringValue = Wrapper[string]
	BytesValue  = Wrapper[[]byte]
)

func DoubleValueJSON() *pbjson.WellKnownHooks[DoubleValue] { return WrapperJSON(pbjson.DoubleScalar()) }
func FloatValueJSON() *pbjson.WellKnownHooks[FloatValue]   { return WrapperJSON(pbjson.FloatScalar()) }
func Int64ValueJSON() *pbjson.WellKnownHooks[Int64Value]   { return WrapperJSON(pbjson.Int64Scalar()) }
func UInt64ValueJSON() *pbjson.WellKnownHooks[UInt64Value] { return WrapperJSON(pbjson.UInt64Scalar()) }
func Int32ValueJSON() *pbjson.WellKnownHooks[Int32Value]   { return WrapperJSON(pbjson.Int32Scalar()) }
func UInt32ValueJSON() *pbjson.WellKnownHooks[UInt32Value] { return WrapperJSON(pbjson.UInt32Scalar()) }
func BoolValueJSON() *pbjson.WellKnownHooks[BoolValue]     { return WrapperJSON(pbjson.BoolScalar()) }
func StringValueJSON() *pbjson.WellKnownHooks[StringValue] { return WrapperJSON(pbjson.StringScalar()) }
func BytesValueJSON() *pbjson.WellKnownHooks[BytesValue]   { return WrapperJSON(pbjson.BytesScalar()) }
