package pbspec

import "github.com/mistsys/protospec/pbwire"

// DecodeField is the type-erased interface every decode-side Compound
// implements. pbcodec.Unmarshal walks a []DecodeField to build the dispatch
// table (spec.md §4.4 step 1) and allocate one Sentinel per field (step 2).
type DecodeField interface {
	// Tags lists every field number this compound listens for. Singular and
	// repeated fields listen on one tag; Oneof listens on one tag per
	// variant.
	Tags() []uint32
	// NewSentinel allocates a fresh per-decode accumulator.
	NewSentinel() Sentinel
}

// Sentinel is a single-field accumulator: created once per decode call,
// written to (possibly many times, for repeated/oneof fields), and read
// exactly once via Get at finalization.
type Sentinel interface {
	// Bind consumes one wire occurrence of one of the owning field's tags.
	Bind(tag uint32, f pbwire.WireField) error
	// Get finalizes the sentinel to the decoded field value (or fails, for
	// a still-empty Required field).
	Get() (any, error)
}

// RequiredFieldMissingError is returned by a Required Basic field's Sentinel
// when no wire occurrence was seen.
type RequiredFieldMissingError struct {
	Tag  uint32
	Name string
}

func (e *RequiredFieldMissingError) Error() string {
	return "pbspec: required field missing: " + e.Name
}

// OneofMissingError reports a oneof with no variant set. No decoder in this
// package returns it: a Oneof whose variants never appear on the wire
// decodes to a not-set OneofValue (Tag == 0) without error.
type OneofMissingError struct {
	Name string
}

func (e *OneofMissingError) Error() string {
	return "pbspec: oneof missing: " + e.Name
}

// ---- Basic ----

type basicDecodeField[T any] struct {
	tag  uint32
	name string
	spec TypedSpec[T]
	def  Default[T]
}

// Basic describes a singular scalar/message field: `Compound(tag, spec, default)`.
func Basic[T any](tag uint32, name string, spec TypedSpec[T], def Default[T]) DecodeField {
	return &basicDecodeField[T]{tag, name, spec, def}
}

func (f *basicDecodeField[T]) Tags() []uint32 { return []uint32{f.tag} }

func (f *basicDecodeField[T]) NewSentinel() Sentinel {
	s := &basicSentinel[T]{tag: f.tag, name: f.name, def: f.def}
	switch f.def.Kind {
	case DefaultRequired:
		// hasValue stays false until a wire occurrence arrives.
	case DefaultProto2:
		s.value = f.def.Value
		s.hasValue = true
	default: // DefaultProto3
		s.value = f.spec.Zero()
		s.hasValue = true
	}
	s.decode = f.spec.Decode
	return s
}

type basicSentinel[T any] struct {
	tag      uint32
	name     string
	def      Default[T]
	decode   func(pbwire.WireField) (T, error)
	value    T
	hasValue bool
	seen     bool
}

func (s *basicSentinel[T]) Bind(tag uint32, f pbwire.WireField) error {
	v, err := s.decode(f)
	if err != nil {
		return err
	}
	s.value = v
	s.hasValue = true
	s.seen = true
	return nil
}

func (s *basicSentinel[T]) Get() (any, error) {
	if s.def.Kind == DefaultRequired && !s.seen {
		return nil, &RequiredFieldMissingError{Tag: s.tag, Name: s.name}
	}
	return s.value, nil
}

// ---- BasicOpt ----

type basicOptDecodeField[T any] struct {
	tag  uint32
	spec TypedSpec[T]
}

// BasicOpt describes a proto2/proto3 `optional` field: absence is
// distinguishable from the zero value. T's Get() result is *T.
func BasicOpt[T any](tag uint32, spec TypedSpec[T]) DecodeField {
	return &basicOptDecodeField[T]{tag, spec}
}

func (f *basicOptDecodeField[T]) Tags() []uint32 { return []uint32{f.tag} }

func (f *basicOptDecodeField[T]) NewSentinel() Sentinel {
	return &basicOptSentinel[T]{decode: f.spec.Decode}
}

type basicOptSentinel[T any] struct {
	decode func(pbwire.WireField) (T, error)
	value  *T
}

func (s *basicOptSentinel[T]) Bind(tag uint32, f pbwire.WireField) error {
	v, err := s.decode(f)
	if err != nil {
		return err
	}
	s.value = &v
	return nil
}

func (s *basicOptSentinel[T]) Get() (any, error) { return s.value, nil }

// ---- BasicReq ----

// BasicReq describes a proto2 `required` field. It is sugar over Basic with
// a Required default.
func BasicReq[T any](tag uint32, name string, spec TypedSpec[T]) DecodeField {
	return Basic(tag, name, spec, Required[T]())
}

// ---- Repeated ----

// Packedness controls whether Repeated's encoder writes a scalar repeated
// field packed (one length-delimited payload) or unpacked (one tag per
// element).
type Packedness bool

const (
	Packed    Packedness = true
	NotPacked Packedness = false
)

type repeatedDecodeField[T any] struct {
	tag  uint32
	spec TypedSpec[T]
}

// Repeated describes a repeated scalar/message field. The decoder accepts
// both packed and unpacked wire occurrences of the same tag regardless of
// the Packedness the spec declares for encoding (spec.md §4.4 step 2), and
// concatenates all elements in wire order.
func Repeated[T any](tag uint32, spec TypedSpec[T]) DecodeField {
	return &repeatedDecodeField[T]{tag, spec}
}

func (f *repeatedDecodeField[T]) Tags() []uint32 { return []uint32{f.tag} }

func (f *repeatedDecodeField[T]) NewSentinel() Sentinel {
	return &repeatedSentinel[T]{spec: f.spec}
}

type repeatedSentinel[T any] struct {
	spec TypedSpec[T]
	vals []T
}

func (s *repeatedSentinel[T]) Bind(tag uint32, f pbwire.WireField) error {
	if f.Kind == pbwire.KindLengthDelimited && s.spec.Kind != pbwire.KindLengthDelimited {
		// A packed occurrence of an otherwise-scalar repeated field: re-read
		// the inner bytes as a stream of the element kind.
		inner := pbwire.NewReader(f.Bytes())
		for inner.HasMore() {
			var wf pbwire.WireField
			var err error
			switch s.spec.Kind {
			case pbwire.KindVarint:
				var v uint64
				v, err = inner.ReadVarint()
				wf = pbwire.WireField{Kind: pbwire.KindVarint, Varint: v}
			case pbwire.KindFixed32:
				var v uint32
				v, err = inner.ReadFixed32()
				wf = pbwire.WireField{Kind: pbwire.KindFixed32, Fixed32: v}
			case pbwire.KindFixed64:
				var v uint64
				v, err = inner.ReadFixed64()
				wf = pbwire.WireField{Kind: pbwire.KindFixed64, Fixed64: v}
			}
			if err != nil {
				return err
			}
			v, err := s.spec.Decode(wf)
			if err != nil {
				return err
			}
			s.vals = append(s.vals, v)
		}
		return nil
	}
	v, err := s.spec.Decode(f)
	if err != nil {
		return err
	}
	s.vals = append(s.vals, v)
	return nil
}

func (s *repeatedSentinel[T]) Get() (any, error) { return s.vals, nil }

// ---- Map ----

// MapEntry is one key/value pair of a decoded map field. Duplicate keys
// collapse last-wins: each key appears once, at the position of its first
// wire occurrence, holding the value of its last.
type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

type mapDecodeField[K comparable, V any] struct {
	tag     uint32
	keySpec TypedSpec[K]
	valSpec TypedSpec[V]
}

// Map describes a map field, implemented as Repeated over a synthetic
// 2-field message {key=1, value=2} per spec.md §4.4 step 2.
func Map[K comparable, V any](tag uint32, keySpec TypedSpec[K], valSpec TypedSpec[V]) DecodeField {
	return &mapDecodeField[K, V]{tag, keySpec, valSpec}
}

func (f *mapDecodeField[K, V]) Tags() []uint32 { return []uint32{f.tag} }

func (f *mapDecodeField[K, V]) NewSentinel() Sentinel {
	return &mapSentinel[K, V]{keySpec: f.keySpec, valSpec: f.valSpec, index: map[K]int{}}
}

type mapSentinel[K comparable, V any] struct {
	keySpec TypedSpec[K]
	valSpec TypedSpec[V]
	entries []MapEntry[K, V]
	index   map[K]int
}

func (s *mapSentinel[K, V]) Bind(tag uint32, f pbwire.WireField) error {
	if f.Kind != pbwire.KindLengthDelimited {
		return wrongKind(f.Kind, pbwire.KindLengthDelimited)
	}
	key := s.keySpec.Zero()
	val := s.valSpec.Zero()
	r := pbwire.NewReader(f.Bytes())
	for r.HasMore() {
		entryTag, entryField, err := r.ReadField()
		if err != nil {
			return err
		}
		switch entryTag {
		case 1:
			key, err = s.keySpec.Decode(entryField)
		case 2:
			val, err = s.valSpec.Decode(entryField)
		default:
			// unknown sub-field of the synthetic entry message; ignore.
		}
		if err != nil {
			return err
		}
	}
	if i, ok := s.index[key]; ok {
		s.entries[i].Value = val
		return nil
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, MapEntry[K, V]{Key: key, Value: val})
	return nil
}

func (s *mapSentinel[K, V]) Get() (any, error) { return s.entries, nil }

// ---- Oneof ----

// OneofVariant is one member of a oneof: its tag, name (for error messages),
// and a decoder from the member's wire field to a value tagged by variant
// index. oneof_elem in spec.md §4.3 is the per-variant constructor a caller
// uses to build one OneofVariant before handing the slice to Oneof.
type OneofVariant struct {
	Tag    uint32
	Name   string
	Decode func(pbwire.WireField) (any, error)
}

// OneofElem builds one OneofVariant from a TypedSpec, wrapping the decoded
// value as `any` so heterogeneous variants can share one Sentinel.
func OneofElem[T any](tag uint32, name string, spec TypedSpec[T]) OneofVariant {
	return OneofVariant{Tag: tag, Name: name, Decode: func(f pbwire.WireField) (any, error) {
		return spec.Decode(f)
	}}
}

// OneofValue is the decoded result of a Oneof field: Tag == 0 means
// not-set, otherwise Tag/Name identify the active variant and Value holds
// its decoded payload.
type OneofValue struct {
	Tag   uint32
	Name  string
	Value any
}

type oneofDecodeField struct {
	variants []OneofVariant
	name     string
}

// Oneof describes a group of fields of which at most one may be set. Later
// wire occurrences of any variant overwrite earlier ones, across the whole
// oneof (last-wins, spec.md §3 invariant).
func Oneof(name string, variants []OneofVariant) DecodeField {
	return &oneofDecodeField{variants: variants, name: name}
}

func (f *oneofDecodeField) Tags() []uint32 {
	tags := make([]uint32, len(f.variants))
	for i, v := range f.variants {
		tags[i] = v.Tag
	}
	return tags
}

func (f *oneofDecodeField) NewSentinel() Sentinel {
	byTag := make(map[uint32]OneofVariant, len(f.variants))
	for _, v := range f.variants {
		byTag[v.Tag] = v
	}
	return &oneofSentinel{byTag: byTag}
}

type oneofSentinel struct {
	byTag map[uint32]OneofVariant
	value OneofValue
}

func (s *oneofSentinel) Bind(tag uint32, f pbwire.WireField) error {
	variant := s.byTag[tag]
	v, err := variant.Decode(f)
	if err != nil {
		return err
	}
	s.value = OneofValue{Tag: tag, Name: variant.Name, Value: v}
	return nil
}

func (s *oneofSentinel) Get() (any, error) { return s.value, nil }
