package pbjson

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
)

// Scalar is the JSON-side analogue of pbspec.TypedSpec: how to project a Go
// scalar to/from the generic JSON value tree.
type Scalar[T any] struct {
	ToJSON   func(T) any
	FromJSON func(any) (T, error)
}

func numberToString(n json.Number) string { return string(n) }

// Int64Scalar covers int64/sint64/fixed64/sfixed64: JSON strings to
// preserve 64-bit precision, accepting both JSON numbers and strings on
// parse (spec.md §4.6).
func Int64Scalar() Scalar[int64] {
	return Scalar[int64]{
		ToJSON: func(v int64) any { return strconv.FormatInt(v, 10) },
		FromJSON: func(v any) (int64, error) {
			switch t := v.(type) {
			case string:
				n, err := strconv.ParseInt(t, 10, 64)
				if err != nil {
					return 0, &IllegalValueError{Type: "int64", Detail: err.Error()}
				}
				return n, nil
			case json.Number:
				n, err := strconv.ParseInt(numberToString(t), 10, 64)
				if err != nil {
					return 0, &IllegalValueError{Type: "int64", Detail: err.Error()}
				}
				return n, nil
			default:
				return 0, &WrongFieldTypeError{Expected: "string or number", Got: v}
			}
		},
	}
}

// UInt64Scalar covers uint64/fixed64.
func UInt64Scalar() Scalar[uint64] {
	return Scalar[uint64]{
		ToJSON: func(v uint64) any { return strconv.FormatUint(v, 10) },
		FromJSON: func(v any) (uint64, error) {
			switch t := v.(type) {
			case string:
				n, err := strconv.ParseUint(t, 10, 64)
				if err != nil {
					return 0, &IllegalValueError{Type: "uint64", Detail: err.Error()}
				}
				return n, nil
			case json.Number:
				n, err := strconv.ParseUint(numberToString(t), 10, 64)
				if err != nil {
					return 0, &IllegalValueError{Type: "uint64", Detail: err.Error()}
				}
				return n, nil
			default:
				return 0, &WrongFieldTypeError{Expected: "string or number", Got: v}
			}
		},
	}
}

// Int32Scalar covers int32/sint32/fixed32/sfixed32: plain JSON numbers.
func Int32Scalar() Scalar[int32] {
	return Scalar[int32]{
		ToJSON: func(v int32) any { return Num(strconv.FormatInt(int64(v), 10)) },
		FromJSON: func(v any) (int32, error) {
			switch t := v.(type) {
			case json.Number:
				n, err := strconv.ParseInt(numberToString(t), 10, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "int32", Detail: err.Error()}
				}
				return int32(n), nil
			case string:
				n, err := strconv.ParseInt(t, 10, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "int32", Detail: err.Error()}
				}
				return int32(n), nil
			default:
				return 0, &WrongFieldTypeError{Expected: "number", Got: v}
			}
		},
	}
}

// UInt32Scalar covers uint32/fixed32.
func UInt32Scalar() Scalar[uint32] {
	return Scalar[uint32]{
		ToJSON: func(v uint32) any { return Num(strconv.FormatUint(uint64(v), 10)) },
		FromJSON: func(v any) (uint32, error) {
			switch t := v.(type) {
			case json.Number:
				n, err := strconv.ParseUint(numberToString(t), 10, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "uint32", Detail: err.Error()}
				}
				return uint32(n), nil
			case string:
				n, err := strconv.ParseUint(t, 10, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "uint32", Detail: err.Error()}
				}
				return uint32(n), nil
			default:
				return 0, &WrongFieldTypeError{Expected: "number", Got: v}
			}
		},
	}
}

func formatFloat(v float64, bitSize int) any {
	if !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return Num(strconv.FormatFloat(v, 'f', 0, bitSize))
	}
	return Num(strconv.FormatFloat(v, 'g', -1, bitSize))
}

// DoubleScalar covers `double`: JSON numbers, emitted without a decimal
// point when the value is an exact integer (spec.md §4.6).
func DoubleScalar() Scalar[float64] {
	return Scalar[float64]{
		ToJSON: func(v float64) any { return formatFloat(v, 64) },
		FromJSON: func(v any) (float64, error) {
			switch t := v.(type) {
			case json.Number:
				f, err := t.Float64()
				if err != nil {
					return 0, &IllegalValueError{Type: "double", Detail: err.Error()}
				}
				return f, nil
			case string:
				f, err := strconv.ParseFloat(t, 64)
				if err != nil {
					return 0, &IllegalValueError{Type: "double", Detail: err.Error()}
				}
				return f, nil
			default:
				return 0, &WrongFieldTypeError{Expected: "number", Got: v}
			}
		},
	}
}

// FloatScalar covers `float`.
func FloatScalar() Scalar[float32] {
	return Scalar[float32]{
		ToJSON: func(v float32) any { return formatFloat(float64(v), 32) },
		FromJSON: func(v any) (float32, error) {
			switch t := v.(type) {
			case json.Number:
				f, err := t.Float64()
				if err != nil {
					return 0, &IllegalValueError{Type: "float", Detail: err.Error()}
				}
				return float32(f), nil
			case string:
				f, err := strconv.ParseFloat(t, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "float", Detail: err.Error()}
				}
				return float32(f), nil
			default:
				return 0, &WrongFieldTypeError{Expected: "number", Got: v}
			}
		},
	}
}

// BoolScalar covers `bool`: JSON booleans, also accepting the strings
// "true"/"false" on parse.
func BoolScalar() Scalar[bool] {
	return Scalar[bool]{
		ToJSON: func(v bool) any { return v },
		FromJSON: func(v any) (bool, error) {
			switch t := v.(type) {
			case bool:
				return t, nil
			case string:
				switch t {
				case "true":
					return true, nil
				case "false":
					return false, nil
				}
			}
			return false, &WrongFieldTypeError{Expected: "bool", Got: v}
		},
	}
}

// StringScalar covers `string`.
func StringScalar() Scalar[string] {
	return Scalar[string]{
		ToJSON: func(v string) any { return v },
		FromJSON: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", &WrongFieldTypeError{Expected: "string", Got: v}
			}
			return s, nil
		},
	}
}

// BytesScalar covers `bytes`: standard base64 with padding.
func BytesScalar() Scalar[[]byte] {
	return Scalar[[]byte]{
		ToJSON: func(v []byte) any { return base64.StdEncoding.EncodeToString(v) },
		FromJSON: func(v any) ([]byte, error) {
			s, ok := v.(string)
			if !ok {
				return nil, &WrongFieldTypeError{Expected: "string", Got: v}
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				// protoc's own marshaler also emits unpadded base64 from
				// some runtimes; fall back before failing.
				b, err = base64.RawStdEncoding.DecodeString(s)
				if err != nil {
					return nil, &IllegalValueError{Type: "bytes", Detail: err.Error()}
				}
			}
			return b, nil
		},
	}
}

// EnumMapping is the name<->value table an `enum` JSON field needs: both
// directions are looked at regardless of Options.EnumNames (parsing always
// accepts either form, per spec.md §4.6).
type EnumMapping[T ~int32] struct {
	Names  map[T]string
	Values map[string]T
}

// EnumScalar builds the JSON Scalar for an enum type using mapping and the
// Marshal-time enumNames option (decode always tries both forms).
func EnumScalar[T ~int32](mapping EnumMapping[T], enumNames func() bool) Scalar[T] {
	return Scalar[T]{
		ToJSON: func(v T) any {
			if enumNames() {
				if name, ok := mapping.Names[v]; ok {
					return name
				}
			}
			return Num(strconv.FormatInt(int64(v), 10))
		},
		FromJSON: func(v any) (T, error) {
			switch t := v.(type) {
			case string:
				if val, ok := mapping.Values[t]; ok {
					return val, nil
				}
				return 0, &IllegalValueError{Type: "enum", Detail: "unknown name " + t}
			case json.Number:
				n, err := strconv.ParseInt(numberToString(t), 10, 32)
				if err != nil {
					return 0, &IllegalValueError{Type: "enum", Detail: err.Error()}
				}
				return T(n), nil
			default:
				return 0, &WrongFieldTypeError{Expected: "string or number", Got: v}
			}
		},
	}
}
