package pbjson

import "github.com/mistsys/protospec/pbspec"

// EncodeField is the JSON-side analogue of pbspec.EncodeField[Out]: one per
// field of message type Out, producing the object member to emit (or
// nothing, per the field's omission rule).
type EncodeField[Out any] interface {
	WriteTo(msg Out, opts Options) (KV, bool)
}

func fieldName(protoName, jsonName string, jsonNames bool) string {
	if jsonNames {
		return jsonName
	}
	return protoName
}

// ---- Basic ----

type basicEncodeField[Out any, T comparable] struct {
	protoName, jsonName string
	scalar              Scalar[T]
	def                 pbspec.Default[T]
	extract             func(Out) T
}

// BasicEncode is the encode-side counterpart of Basic: omits a proto3
// field left at its zero value when Options.OmitDefaultValues is set.
func BasicEncode[Out any, T comparable](protoName, jsonName string, scalar Scalar[T], def pbspec.Default[T], extract func(Out) T) EncodeField[Out] {
	return &basicEncodeField[Out, T]{protoName, jsonName, scalar, def, extract}
}

func (f *basicEncodeField[Out, T]) WriteTo(msg Out, opts Options) (KV, bool) {
	v := f.extract(msg)
	if opts.OmitDefaultValues && f.def.Kind == pbspec.DefaultProto3 {
		var zero T
		if v == zero {
			return KV{}, false
		}
	}
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: f.scalar.ToJSON(v)}, true
}

// ---- BasicOpt ----

type basicOptEncodeField[Out any, T any] struct {
	protoName, jsonName string
	scalar              Scalar[T]
	extract             func(Out) *T
}

// BasicOptEncode is the encode-side counterpart of BasicOpt: emits iff
// non-nil, regardless of OmitDefaultValues (presence is the point of
// `optional`).
func BasicOptEncode[Out any, T any](protoName, jsonName string, scalar Scalar[T], extract func(Out) *T) EncodeField[Out] {
	return &basicOptEncodeField[Out, T]{protoName, jsonName, scalar, extract}
}

func (f *basicOptEncodeField[Out, T]) WriteTo(msg Out, opts Options) (KV, bool) {
	v := f.extract(msg)
	if v == nil {
		return KV{}, false
	}
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: f.scalar.ToJSON(*v)}, true
}

// BasicReqEncode is the encode-side counterpart of BasicReq: always emits.
func BasicReqEncode[Out any, T comparable](protoName, jsonName string, scalar Scalar[T], extract func(Out) T) EncodeField[Out] {
	return BasicEncode(protoName, jsonName, scalar, pbspec.Required[T](), extract)
}

// ---- Bytes ----
// []byte isn't comparable, so it needs its own zero-check rather than
// going through BasicEncode/Basic.

type bytesEncodeField[Out any] struct {
	protoName, jsonName string
	def                 pbspec.DefaultKind
	extract             func(Out) []byte
}

// BytesEncode is the `bytes` scalar's encode-side field.
func BytesEncode[Out any](protoName, jsonName string, def pbspec.DefaultKind, extract func(Out) []byte) EncodeField[Out] {
	return &bytesEncodeField[Out]{protoName, jsonName, def, extract}
}

func (f *bytesEncodeField[Out]) WriteTo(msg Out, opts Options) (KV, bool) {
	v := f.extract(msg)
	if opts.OmitDefaultValues && f.def == pbspec.DefaultProto3 && len(v) == 0 {
		return KV{}, false
	}
	scalar := BytesScalar()
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: scalar.ToJSON(v)}, true
}

type bytesField struct {
	protoName, jsonName string
}

// Bytes is the `bytes` scalar's decode-side field (wraps BytesScalar).
func Bytes(protoName, jsonName string, def pbspec.Default[[]byte]) DecodeField {
	return Basic(protoName, jsonName, BytesScalar(), def)
}

// ---- Repeated ----

type repeatedEncodeField[Out any, T any] struct {
	protoName, jsonName string
	scalar              Scalar[T]
	extract             func(Out) []T
}

// RepeatedEncode is the encode-side counterpart of Repeated: omitted when
// empty and Options.OmitDefaultValues is set, otherwise a (possibly empty)
// JSON array.
func RepeatedEncode[Out any, T any](protoName, jsonName string, scalar Scalar[T], extract func(Out) []T) EncodeField[Out] {
	return &repeatedEncodeField[Out, T]{protoName, jsonName, scalar, extract}
}

func (f *repeatedEncodeField[Out, T]) WriteTo(msg Out, opts Options) (KV, bool) {
	vals := f.extract(msg)
	if len(vals) == 0 && opts.OmitDefaultValues {
		return KV{}, false
	}
	arr := make([]any, len(vals))
	for i, v := range vals {
		arr[i] = f.scalar.ToJSON(v)
	}
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: arr}, true
}

// ---- Map ----

type mapEncodeField[Out any, K comparable, V any] struct {
	protoName, jsonName string
	key                 MapKeyCodec[K]
	val                 Scalar[V]
	extract             func(Out) []pbspec.MapEntry[K, V]
}

// MapEncode is the encode-side counterpart of Map.
func MapEncode[Out any, K comparable, V any](protoName, jsonName string, key MapKeyCodec[K], val Scalar[V], extract func(Out) []pbspec.MapEntry[K, V]) EncodeField[Out] {
	return &mapEncodeField[Out, K, V]{protoName, jsonName, key, val, extract}
}

func (f *mapEncodeField[Out, K, V]) WriteTo(msg Out, opts Options) (KV, bool) {
	entries := f.extract(msg)
	if len(entries) == 0 && opts.OmitDefaultValues {
		return KV{}, false
	}
	members := make(Obj, len(entries))
	for i, e := range entries {
		members[i] = KV{Key: f.key.ToString(e.Key), Val: f.val.ToJSON(e.Value)}
	}
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: members}, true
}

// ---- Message ----

type messageEncodeField[Out any, T any] struct {
	protoName, jsonName string
	sub                 MarshalShape[T]
	extract             func(Out) *T
}

// MessageEncode is the encode-side counterpart of Message: emits iff
// non-nil.
func MessageEncode[Out any, T any](protoName, jsonName string, sub MarshalShape[T], extract func(Out) *T) EncodeField[Out] {
	return &messageEncodeField[Out, T]{protoName, jsonName, sub, extract}
}

func (f *messageEncodeField[Out, T]) WriteTo(msg Out, opts Options) (KV, bool) {
	v := f.extract(msg)
	if v == nil {
		return KV{}, false
	}
	val := marshalValue(*v, f.sub, opts)
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: val}, true
}

type repeatedMessageEncodeField[Out any, T any] struct {
	protoName, jsonName string
	sub                 MarshalShape[T]
	extract             func(Out) []T
}

// RepeatedMessageEncode is the encode-side counterpart of RepeatedMessage.
func RepeatedMessageEncode[Out any, T any](protoName, jsonName string, sub MarshalShape[T], extract func(Out) []T) EncodeField[Out] {
	return &repeatedMessageEncodeField[Out, T]{protoName, jsonName, sub, extract}
}

func (f *repeatedMessageEncodeField[Out, T]) WriteTo(msg Out, opts Options) (KV, bool) {
	vals := f.extract(msg)
	if len(vals) == 0 && opts.OmitDefaultValues {
		return KV{}, false
	}
	arr := make([]any, len(vals))
	for i, v := range vals {
		arr[i] = marshalValue(v, f.sub, opts)
	}
	return KV{Key: fieldName(f.protoName, f.jsonName, opts.JSONNames), Val: arr}, true
}

// ---- Oneof ----

// OneofVariantEncode pairs a variant's names with a type-erased encoder.
type OneofVariantEncode struct {
	Tag                 uint32
	ProtoName, JSONName string
	Write               func(v any) any
}

// OneofElemEncode builds one OneofVariantEncode from a Scalar.
func OneofElemEncode[T any](tag uint32, protoName, jsonName string, scalar Scalar[T]) OneofVariantEncode {
	return OneofVariantEncode{Tag: tag, ProtoName: protoName, JSONName: jsonName, Write: func(v any) any {
		return scalar.ToJSON(v.(T))
	}}
}

type oneofEncodeField[Out any] struct {
	variants map[uint32]OneofVariantEncode
	extract  func(Out) OneofValue
}

// OneofEncode is the encode-side counterpart of Oneof: emits exactly the
// active variant's member, or nothing for the not-set case.
func OneofEncode[Out any](variants []OneofVariantEncode, extract func(Out) OneofValue) EncodeField[Out] {
	m := make(map[uint32]OneofVariantEncode, len(variants))
	for _, v := range variants {
		m[v.Tag] = v
	}
	return &oneofEncodeField[Out]{m, extract}
}

func (f *oneofEncodeField[Out]) WriteTo(msg Out, opts Options) (KV, bool) {
	ov := f.extract(msg)
	if ov.Tag == 0 {
		return KV{}, false
	}
	variant, ok := f.variants[ov.Tag]
	if !ok {
		return KV{}, false
	}
	return KV{Key: fieldName(variant.ProtoName, variant.JSONName, opts.JSONNames), Val: variant.Write(ov.Value)}, true
}
