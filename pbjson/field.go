package pbjson

import "github.com/mistsys/protospec/pbspec"

// Lookup fetches a member by name from a parsed JSON object. ParseValue
// yields map[string]any for objects, which already satisfies this as
// map access; callers building an object by hand can use Obj.Get.
type Lookup func(name string) (any, bool)

// DecodeField is the JSON-side analogue of pbspec.DecodeField. Unlike the
// binary decoder, a JSON object is parsed whole before any field is
// examined, so there is no streaming Sentinel: Bind looks the field up by
// name (trying both the jsonName and the proto name, since canonical
// proto3 JSON parsing accepts either regardless of Options.JSONNames) and
// returns its decoded value directly.
type DecodeField interface {
	Bind(get Lookup, opts Options) (any, error)
}

// RequiredFieldMissingError is returned by a Required Basic field when
// neither its jsonName nor its proto name is present in the object.
type RequiredFieldMissingError struct {
	Name string
}

func (e *RequiredFieldMissingError) Error() string {
	return "pbjson: required field missing: " + e.Name
}

// OneofConflictError is returned when more than one variant of a oneof is
// present in the same JSON object.
type OneofConflictError struct {
	Name string
}

func (e *OneofConflictError) Error() string {
	return "pbjson: more than one member of oneof " + e.Name + " set"
}

func lookupEither(get Lookup, jsonName, protoName string, jsonNamesFirst bool) (any, bool) {
	first, second := jsonName, protoName
	if !jsonNamesFirst {
		first, second = protoName, jsonName
	}
	if v, ok := get(first); ok {
		return v, true
	}
	if second != first {
		return get(second)
	}
	return nil, false
}

// ---- Basic ----

type basicField[T any] struct {
	protoName, jsonName string
	scalar              Scalar[T]
	def                 pbspec.Default[T]
}

// Basic describes a singular scalar field addressed by its proto name and
// camelCase jsonName.
func Basic[T any](protoName, jsonName string, scalar Scalar[T], def pbspec.Default[T]) DecodeField {
	return &basicField[T]{protoName, jsonName, scalar, def}
}

func (f *basicField[T]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		switch f.def.Kind {
		case pbspec.DefaultRequired:
			if !ok {
				return nil, &RequiredFieldMissingError{Name: f.protoName}
			}
		case pbspec.DefaultProto2:
			if !ok {
				return f.def.Value, nil
			}
		}
		var zero T
		return zero, nil
	}
	return f.scalar.FromJSON(v)
}

// ---- BasicOpt ----

type basicOptField[T any] struct {
	protoName, jsonName string
	scalar              Scalar[T]
}

// BasicOpt describes an `optional` scalar field: absence (and explicit
// JSON null) decode to a nil *T, distinguishing "not set" from the zero
// value.
func BasicOpt[T any](protoName, jsonName string, scalar Scalar[T]) DecodeField {
	return &basicOptField[T]{protoName, jsonName, scalar}
}

func (f *basicOptField[T]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		return (*T)(nil), nil
	}
	val, err := f.scalar.FromJSON(v)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

// BasicReq is sugar over Basic with a Required default, for proto2
// `required` scalar fields.
func BasicReq[T any](protoName, jsonName string, scalar Scalar[T]) DecodeField {
	return Basic(protoName, jsonName, scalar, pbspec.Required[T]())
}

// ---- Repeated ----

type repeatedField[T any] struct {
	protoName, jsonName string
	scalar              Scalar[T]
}

// Repeated describes a repeated scalar field: a JSON array, or absence
// decoding to an empty (nil) slice.
func Repeated[T any](protoName, jsonName string, scalar Scalar[T]) DecodeField {
	return &repeatedField[T]{protoName, jsonName, scalar}
}

func (f *repeatedField[T]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		return []T(nil), nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &WrongFieldTypeError{Field: f.protoName, Expected: "array", Got: v}
	}
	out := make([]T, len(arr))
	for i, e := range arr {
		val, err := f.scalar.FromJSON(e)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// ---- Map ----

// MapKeyCodec converts a map field's key type to and from the JSON string
// every object key must be (spec.md §4.6: map keys are always rendered as
// JSON strings, regardless of the proto key type).
type MapKeyCodec[K comparable] struct {
	ToString   func(K) string
	FromString func(string) (K, error)
}

type mapField[K comparable, V any] struct {
	protoName, jsonName string
	key                 MapKeyCodec[K]
	val                 Scalar[V]
}

// Map describes a map field: a JSON object whose member names are the map
// keys rendered through key, and whose member values decode through val.
func Map[K comparable, V any](protoName, jsonName string, key MapKeyCodec[K], val Scalar[V]) DecodeField {
	return &mapField[K, V]{protoName, jsonName, key, val}
}

func (f *mapField[K, V]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		return []pbspec.MapEntry[K, V](nil), nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &WrongFieldTypeError{Field: f.protoName, Expected: "object", Got: v}
	}
	out := make([]pbspec.MapEntry[K, V], 0, len(obj))
	for k, raw := range obj {
		key, err := f.key.FromString(k)
		if err != nil {
			return nil, err
		}
		val, err := f.val.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, pbspec.MapEntry[K, V]{Key: key, Value: val})
	}
	return out, nil
}

// ---- Message ----

type messageField[T any] struct {
	protoName, jsonName string
	sub                 Shape[T]
}

// Message describes a singular sub-message field: absence (or JSON null)
// decodes to a nil *T.
func Message[T any](protoName, jsonName string, sub Shape[T]) DecodeField {
	return &messageField[T]{protoName, jsonName, sub}
}

func (f *messageField[T]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		return (*T)(nil), nil
	}
	val, err := unmarshalValue(v, f.sub, opts)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

type repeatedMessageField[T any] struct {
	protoName, jsonName string
	sub                 Shape[T]
}

// RepeatedMessage describes a repeated sub-message field.
func RepeatedMessage[T any](protoName, jsonName string, sub Shape[T]) DecodeField {
	return &repeatedMessageField[T]{protoName, jsonName, sub}
}

func (f *repeatedMessageField[T]) Bind(get Lookup, opts Options) (any, error) {
	v, ok := lookupEither(get, f.jsonName, f.protoName, opts.JSONNames)
	if !ok || v == nil {
		return []T(nil), nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &WrongFieldTypeError{Field: f.protoName, Expected: "array", Got: v}
	}
	out := make([]T, len(arr))
	for i, e := range arr {
		val, err := unmarshalValue(e, f.sub, opts)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// ---- Oneof ----

// OneofVariant is one member of a JSON oneof: its names and a decoder from
// the raw JSON value to a value tagged by variant index.
type OneofVariant struct {
	Tag                 uint32
	ProtoName, JSONName string
	Decode              func(any) (any, error)
}

// OneofElem builds one OneofVariant from a Scalar.
func OneofElem[T any](tag uint32, protoName, jsonName string, scalar Scalar[T]) OneofVariant {
	return OneofVariant{Tag: tag, ProtoName: protoName, JSONName: jsonName, Decode: func(v any) (any, error) {
		return scalar.FromJSON(v)
	}}
}

// OneofValue is the decoded result of a Oneof field; Tag == 0 means
// not-set.
type OneofValue struct {
	Tag   uint32
	Name  string
	Value any
}

type oneofField struct {
	name     string
	variants []OneofVariant
}

// Oneof describes a group of fields of which at most one may be present in
// the JSON object.
func Oneof(name string, variants []OneofVariant) DecodeField {
	return &oneofField{name, variants}
}

func (f *oneofField) Bind(get Lookup, opts Options) (any, error) {
	var result OneofValue
	found := false
	for _, variant := range f.variants {
		v, ok := lookupEither(get, variant.JSONName, variant.ProtoName, opts.JSONNames)
		if !ok || v == nil {
			continue
		}
		if found {
			return nil, &OneofConflictError{Name: f.name}
		}
		val, err := variant.Decode(v)
		if err != nil {
			return nil, err
		}
		result = OneofValue{Tag: variant.Tag, Name: variant.ProtoName, Value: val}
		found = true
	}
	return result, nil
}
