package pbspec

import "github.com/mistsys/protospec/pbwire"

// EncodeField is the encode-side analogue of DecodeField: one per field of
// message type Out, built from an extractor function that projects the
// field value out of the message record (spec.md §4.3). Out is fixed per
// message, so an ordinary generic interface (rather than the type-erasure
// DecodeField needs to sit in one mixed-type slice) is enough here.
type EncodeField[Out any] interface {
	// WriteTo emits this field's tag+value (or nothing, if omitted) for
	// msg. proto3 selects whether proto3 default-elision applies.
	WriteTo(w *pbwire.Writer, msg Out, proto3 bool)
}

// ---- Basic ----

type basicEncodeField[Out any, T any] struct {
	tag     uint32
	spec    TypedSpec[T]
	def     Default[T]
	extract func(Out) T
}

// BasicEncode is the encode-side counterpart of Basic.
func BasicEncode[Out any, T any](tag uint32, spec TypedSpec[T], def Default[T], extract func(Out) T) EncodeField[Out] {
	return &basicEncodeField[Out, T]{tag, spec, def, extract}
}

func (f *basicEncodeField[Out, T]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	v := f.extract(msg)
	if proto3 && f.def.Kind == DefaultProto3 && !f.spec.IsMessage && f.spec.IsZero(v) {
		return
	}
	w.WriteTag(f.tag, f.spec.Kind)
	f.spec.Encode(w, v)
}

// ---- BasicOpt ----

type basicOptEncodeField[Out any, T any] struct {
	tag     uint32
	spec    TypedSpec[T]
	extract func(Out) *T
}

// BasicOptEncode is the encode-side counterpart of BasicOpt: emits iff Some.
func BasicOptEncode[Out any, T any](tag uint32, spec TypedSpec[T], extract func(Out) *T) EncodeField[Out] {
	return &basicOptEncodeField[Out, T]{tag, spec, extract}
}

func (f *basicOptEncodeField[Out, T]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	v := f.extract(msg)
	if v == nil {
		return
	}
	w.WriteTag(f.tag, f.spec.Kind)
	f.spec.Encode(w, *v)
}

// ---- BasicReq ----

// BasicReqEncode is the encode-side counterpart of BasicReq: always emits.
func BasicReqEncode[Out any, T any](tag uint32, spec TypedSpec[T], extract func(Out) T) EncodeField[Out] {
	return &basicReqEncodeField[Out, T]{tag, spec, extract}
}

type basicReqEncodeField[Out any, T any] struct {
	tag     uint32
	spec    TypedSpec[T]
	extract func(Out) T
}

func (f *basicReqEncodeField[Out, T]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	w.WriteTag(f.tag, f.spec.Kind)
	f.spec.Encode(w, f.extract(msg))
}

// ---- Repeated ----

type repeatedEncodeField[Out any, T any] struct {
	tag     uint32
	spec    TypedSpec[T]
	packed  Packedness
	extract func(Out) []T
}

// RepeatedEncode is the encode-side counterpart of Repeated.
func RepeatedEncode[Out any, T any](tag uint32, spec TypedSpec[T], packed Packedness, extract func(Out) []T) EncodeField[Out] {
	return &repeatedEncodeField[Out, T]{tag, spec, packed, extract}
}

func (f *repeatedEncodeField[Out, T]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	vals := f.extract(msg)
	if len(vals) == 0 {
		return
	}
	canPack := f.spec.Kind == pbwire.KindVarint || f.spec.Kind == pbwire.KindFixed32 || f.spec.Kind == pbwire.KindFixed64
	if bool(f.packed) && canPack {
		sub := pbwire.NewWriter(pbwire.Balanced)
		for _, v := range vals {
			f.spec.Encode(sub, v)
		}
		w.WriteTag(f.tag, pbwire.KindLengthDelimited)
		w.WriteLengthDelimited(sub.Contents())
		return
	}
	for _, v := range vals {
		w.WriteTag(f.tag, f.spec.Kind)
		f.spec.Encode(w, v)
	}
}

// ---- Map ----

type mapEncodeField[Out any, K comparable, V any] struct {
	tag     uint32
	keySpec TypedSpec[K]
	valSpec TypedSpec[V]
	extract func(Out) []MapEntry[K, V]
}

// MapEncode is the encode-side counterpart of Map: one tagged
// length-delimited entry per pair, each a two-field sub-message (tag 1 key,
// tag 2 value).
func MapEncode[Out any, K comparable, V any](tag uint32, keySpec TypedSpec[K], valSpec TypedSpec[V], extract func(Out) []MapEntry[K, V]) EncodeField[Out] {
	return &mapEncodeField[Out, K, V]{tag, keySpec, valSpec, extract}
}

func (f *mapEncodeField[Out, K, V]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	for _, e := range f.extract(msg) {
		sub := pbwire.NewWriter(pbwire.Balanced)
		sub.WriteTag(1, f.keySpec.Kind)
		f.keySpec.Encode(sub, e.Key)
		sub.WriteTag(2, f.valSpec.Kind)
		f.valSpec.Encode(sub, e.Value)
		w.WriteTag(f.tag, pbwire.KindLengthDelimited)
		w.WriteLengthDelimited(sub.Contents())
	}
}

// ---- Oneof ----

// OneofVariantEncode pairs a OneofVariant's tag with an encode function for
// its payload, type-erased to `any` so a set of heterogeneous variants can
// be dispatched on OneofValue.Tag.
type OneofVariantEncode struct {
	Tag   uint32
	Kind  pbwire.FieldKind
	Write func(w *pbwire.Writer, v any)
}

// OneofElemEncode builds one OneofVariantEncode from a TypedSpec.
func OneofElemEncode[T any](tag uint32, spec TypedSpec[T]) OneofVariantEncode {
	return OneofVariantEncode{Tag: tag, Kind: spec.Kind, Write: func(w *pbwire.Writer, v any) {
		spec.Encode(w, v.(T))
	}}
}

type oneofEncodeField[Out any] struct {
	variants map[uint32]OneofVariantEncode
	extract  func(Out) OneofValue
}

// OneofEncode is the encode-side counterpart of Oneof: emits exactly the
// active variant's tag+value, or nothing for the not-set case (Tag == 0).
func OneofEncode[Out any](variants []OneofVariantEncode, extract func(Out) OneofValue) EncodeField[Out] {
	m := make(map[uint32]OneofVariantEncode, len(variants))
	for _, v := range variants {
		m[v.Tag] = v
	}
	return &oneofEncodeField[Out]{variants: m, extract: extract}
}

func (f *oneofEncodeField[Out]) WriteTo(w *pbwire.Writer, msg Out, proto3 bool) {
	ov := f.extract(msg)
	if ov.Tag == 0 {
		return
	}
	variant, ok := f.variants[ov.Tag]
	if !ok {
		return
	}
	w.WriteTag(ov.Tag, variant.Kind)
	variant.Write(w, ov.Value)
}
