package wellknown

import (
	"encoding/json"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// NullValue mirrors google.protobuf.NullValue: a singleton enum used as
// Value's "the JSON value is null" variant.
type NullValue int32

// NullValueNull is NullValue's only enumerant.
const NullValueNull NullValue = 0

// NullValueSpec is NullValue's binary TypedSpec, for use as an ordinary
// (non-Value-wrapped) enum field.
func NullValueSpec() pbspec.TypedSpec[NullValue] {
	return pbspec.Enum(func(v int32) (NullValue, error) { return NullValue(v), nil })
}

// NullValueMapping is NullValue's JSON enum name table.
func NullValueMapping() pbjson.EnumMapping[NullValue] {
	return pbjson.EnumMapping[NullValue]{
		Names:  map[NullValue]string{NullValueNull: "NULL_VALUE"},
		Values: map[string]NullValue{"NULL_VALUE": NullValueNull},
	}
}

// Value mirrors google.protobuf.Value: a dynamically-typed JSON value. Kind
// holds nil (absent/not-yet-set), NullValue, float64, string, bool, *Struct,
// or *ListValue.
type Value struct {
	Kind any
}

// Struct mirrors google.protobuf.Struct: an ordered map<string, Value>.
// Field order is preserved (unlike a Go map) so re-marshaling is
// deterministic.
type Struct struct {
	Fields []pbspec.MapEntry[string, Value]
}

// ListValue mirrors google.protobuf.ListValue: a homogeneous-in-name-only
// JSON array of Value.
type ListValue struct {
	Values []Value
}

func structTypedSpec() pbspec.TypedSpec[*Struct] {
	return pbspec.MessageOpt(
		func(r *pbwire.Reader) (*Struct, error) {
			v, _, err := pbcodec.UnmarshalReader(r, StructDecodeShape())
			return &v, err
		},
		func(w *pbwire.Writer, v *Struct) {
			if v == nil {
				return
			}
			pbcodec.MarshalWriter(w, *v, StructEncodeShape())
		},
	)
}

func listValueTypedSpec() pbspec.TypedSpec[*ListValue] {
	return pbspec.MessageOpt(
		func(r *pbwire.Reader) (*ListValue, error) {
			v, _, err := pbcodec.UnmarshalReader(r, ListValueDecodeShape())
			return &v, err
		},
		func(w *pbwire.Writer, v *ListValue) {
			if v == nil {
				return
			}
			pbcodec.MarshalWriter(w, *v, ListValueEncodeShape())
		},
	)
}

func valueTypedSpec() pbspec.TypedSpec[Value] {
	return pbspec.Message(
		func(r *pbwire.Reader) (Value, error) {
			v, _, err := pbcodec.UnmarshalReader(r, ValueDecodeShape())
			return v, err
		},
		func(w *pbwire.Writer, v Value) {
			pbcodec.MarshalWriter(w, v, ValueEncodeShape())
		},
		func(v Value) bool { return v.Kind == nil },
	)
}

// StructDecodeShape is Struct's one-field (map) binary decode spec.
func StructDecodeShape() pbcodec.Shape[Struct] {
	return pbcodec.Shape[Struct]{
		Fields: []pbspec.DecodeField{
			pbspec.Map(1, pbspec.String(), valueTypedSpec()),
		},
		Build: func(vals []any) (Struct, error) {
			return Struct{Fields: vals[0].([]pbspec.MapEntry[string, Value])}, nil
		},
	}
}

// StructEncodeShape is Struct's one-field (map) binary encode spec.
func StructEncodeShape() pbcodec.EncodeShape[Struct] {
	return pbcodec.EncodeShape[Struct]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Struct]{
			pbspec.MapEncode(1, pbspec.String(), valueTypedSpec(), func(s Struct) []pbspec.MapEntry[string, Value] { return s.Fields }),
		},
	}
}

// ListValueDecodeShape is ListValue's one-field (repeated) binary decode spec.
func ListValueDecodeShape() pbcodec.Shape[ListValue] {
	return pbcodec.Shape[ListValue]{
		Fields: []pbspec.DecodeField{
			pbspec.Repeated(1, valueTypedSpec()),
		},
		Build: func(vals []any) (ListValue, error) {
			return ListValue{Values: vals[0].([]Value)}, nil
		},
	}
}

// ListValueEncodeShape is ListValue's one-field (repeated) binary encode spec.
func ListValueEncodeShape() pbcodec.EncodeShape[ListValue] {
	return pbcodec.EncodeShape[ListValue]{
		Proto3: true,
		Fields: []pbspec.EncodeField[ListValue]{
			pbspec.RepeatedEncode(1, valueTypedSpec(), pbspec.NotPacked, func(l ListValue) []Value { return l.Values }),
		},
	}
}

func valueToOneof(v Value) pbspec.OneofValue {
	switch k := v.Kind.(type) {
	case NullValue:
		return pbspec.OneofValue{Tag: 1, Name: "null_value", Value: k}
	case float64:
		return pbspec.OneofValue{Tag: 2, Name: "number_value", Value: k}
	case string:
		return pbspec.OneofValue{Tag: 3, Name: "string_value", Value: k}
	case bool:
		return pbspec.OneofValue{Tag: 4, Name: "bool_value", Value: k}
	case *Struct:
		return pbspec.OneofValue{Tag: 5, Name: "struct_value", Value: k}
	case *ListValue:
		return pbspec.OneofValue{Tag: 6, Name: "list_value", Value: k}
	default:
		return pbspec.OneofValue{}
	}
}

// ValueDecodeShape is Value's oneof-of-six binary decode spec.
func ValueDecodeShape() pbcodec.Shape[Value] {
	return pbcodec.Shape[Value]{
		Fields: []pbspec.DecodeField{
			pbspec.Oneof("kind", []pbspec.OneofVariant{
				pbspec.OneofElem(1, "null_value", NullValueSpec()),
				pbspec.OneofElem(2, "number_value", pbspec.Double()),
				pbspec.OneofElem(3, "string_value", pbspec.String()),
				pbspec.OneofElem(4, "bool_value", pbspec.Bool()),
				pbspec.OneofElem(5, "struct_value", structTypedSpec()),
				pbspec.OneofElem(6, "list_value", listValueTypedSpec()),
			}),
		},
		Build: func(vals []any) (Value, error) {
			ov := vals[0].(pbspec.OneofValue)
			if ov.Tag == 0 {
				return Value{Kind: nil}, nil
			}
			return Value{Kind: ov.Value}, nil
		},
	}
}

// ValueEncodeShape is Value's oneof-of-six binary encode spec.
func ValueEncodeShape() pbcodec.EncodeShape[Value] {
	return pbcodec.EncodeShape[Value]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Value]{
			pbspec.OneofEncode([]pbspec.OneofVariantEncode{
				pbspec.OneofElemEncode(1, NullValueSpec()),
				pbspec.OneofElemEncode(2, pbspec.Double()),
				pbspec.OneofElemEncode(3, pbspec.String()),
				pbspec.OneofElemEncode(4, pbspec.Bool()),
				pbspec.OneofElemEncode(5, structTypedSpec()),
				pbspec.OneofElemEncode(6, listValueTypedSpec()),
			}, valueToOneof),
		},
	}
}

func valueToJSON(v Value) (any, error) {
	switch k := v.Kind.(type) {
	case nil:
		return nil, nil
	case NullValue:
		return nil, nil
	case float64:
		return pbjson.DoubleScalar().ToJSON(k), nil
	case string:
		return k, nil
	case bool:
		return k, nil
	case *Struct:
		return structToJSON(k)
	case *ListValue:
		return listValueToJSON(k)
	default:
		return nil, &pbjson.IllegalValueError{Type: "Value", Detail: "unrepresentable kind"}
	}
}

func structToJSON(s *Struct) (any, error) {
	if s == nil {
		return pbjson.Obj(nil), nil
	}
	obj := make(pbjson.Obj, 0, len(s.Fields))
	for _, e := range s.Fields {
		jv, err := valueToJSON(e.Value)
		if err != nil {
			return nil, err
		}
		obj = append(obj, pbjson.KV{Key: e.Key, Val: jv})
	}
	return obj, nil
}

func listValueToJSON(l *ListValue) (any, error) {
	if l == nil {
		return []any{}, nil
	}
	arr := make([]any, len(l.Values))
	for i, v := range l.Values {
		jv, err := valueToJSON(v)
		if err != nil {
			return nil, err
		}
		arr[i] = jv
	}
	return arr, nil
}

func jsonToValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{Kind: NullValueNull}, nil
	case string:
		return Value{Kind: t}, nil
	case bool:
		return Value{Kind: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, &pbjson.IllegalValueError{Type: "Value", Detail: err.Error()}
		}
		return Value{Kind: f}, nil
	case map[string]any:
		s, err := jsonToStruct(t)
		return Value{Kind: s}, err
	case []any:
		l, err := jsonToListValue(t)
		return Value{Kind: l}, err
	default:
		return Value{}, &pbjson.WrongFieldTypeError{Field: "Value", Expected: "any JSON value", Got: v}
	}
}

func jsonToStruct(obj map[string]any) (*Struct, error) {
	s := &Struct{Fields: make([]pbspec.MapEntry[string, Value], 0, len(obj))}
	for k, raw := range obj {
		val, err := jsonToValue(raw)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, pbspec.MapEntry[string, Value]{Key: k, Value: val})
	}
	return s, nil
}

func jsonToListValue(arr []any) (*ListValue, error) {
	l := &ListValue{Values: make([]Value, len(arr))}
	for i, e := range arr {
		val, err := jsonToValue(e)
		if err != nil {
			return nil, err
		}
		l.Values[i] = val
	}
	return l, nil
}

// ValueJSON is Value's pbjson.WellKnownHooks: the dynamically-typed JSON
// value itself, in place of a {"kind": ...} oneof object.
func ValueJSON() *pbjson.WellKnownHooks[Value] {
	return &pbjson.WellKnownHooks[Value]{Wrap: valueToJSON, Unwrap: jsonToValue}
}

// StructJSON is Struct's pbjson.WellKnownHooks: a plain JSON object.
func StructJSON() *pbjson.WellKnownHooks[Struct] {
	return &pbjson.WellKnownHooks[Struct]{
		Wrap: func(s Struct) (any, error) { return structToJSON(&s) },
		Unwrap: func(v any) (Struct, error) {
			obj, ok := v.(map[string]any)
			if !ok {
				return Struct{}, &pbjson.WrongFieldTypeError{Field: "Struct", Expected: "object", Got: v}
			}
			s, err := jsonToStruct(obj)
			if err != nil {
				return Struct{}, err
			}
			return *s, nil
		},
	}
}

// ListValueJSON is ListValue's pbjson.WellKnownHooks: a plain JSON array.
func ListValueJSON() *pbjson.WellKnownHooks[ListValue] {
	return &pbjson.WellKnownHooks[ListValue]{
		Wrap: func(l ListValue) (any, error) { return listValueToJSON(&l) },
		Unwrap: func(v any) (ListValue, error) {
			arr, ok := v.([]any)
			if !ok {
				return ListValue{}, &pbjson.WrongFieldTypeError{Field: "ListValue", Expected: "array", Got: v}
			}
			l, err := jsonToListValue(arr)
			if err != nil {
				return ListValue{}, err
			}
			return *l, nil
		},
	}
}
