package pbjson

import "fmt"

// WellKnownHooks lets a message type override its entire JSON
// representation, for the well-known types listed in spec.md §4.6 (Duration,
// Timestamp, the wrapper types, Value/Struct/ListValue, FieldMask, Empty):
// after the ordinary field-by-field shape would otherwise apply, Wrap
// produces the replacement JSON value and Unwrap parses straight from it.
type WellKnownHooks[Out any] struct {
	Wrap   func(Out) (any, error)
	Unwrap func(any) (Out, error)
}

// Shape describes one message type's decode-side JSON spec: its fields (by
// name rather than by wire tag) and the constructor that assembles Out from
// their decoded values, in the same order as Fields.
type Shape[Out any] struct {
	Fields    []DecodeField
	Build     func(vals []any) (Out, error)
	WellKnown *WellKnownHooks[Out]
}

// MarshalShape describes one message type's encode-side JSON spec.
type MarshalShape[Out any] struct {
	Fields    []EncodeField[Out]
	WellKnown *WellKnownHooks[Out]
}

func asLookup(v any) (Lookup, error) {
	switch t := v.(type) {
	case map[string]any:
		return func(name string) (any, bool) { val, ok := t[name]; return val, ok }, nil
	case Obj:
		return func(name string) (any, bool) { return t.Get(name) }, nil
	default:
		return nil, &WrongFieldTypeError{Expected: "object", Got: v}
	}
}

// unmarshalValue builds Out from an already-parsed JSON value (map, Obj, or
// a well-known-type scalar/array) against shape.
func unmarshalValue[Out any](v any, shape Shape[Out], opts Options) (Out, error) {
	var zero Out
	if shape.WellKnown != nil {
		return shape.WellKnown.Unwrap(v)
	}
	get, err := asLookup(v)
	if err != nil {
		return zero, err
	}
	vals := make([]any, len(shape.Fields))
	for i, f := range shape.Fields {
		val, err := f.Bind(get, opts)
		if err != nil {
			return zero, err
		}
		vals[i] = val
	}
	return shape.Build(vals)
}

// marshalValue renders msg to a pbjson value tree against shape, without
// serializing it to text (used recursively for sub-messages).
func marshalValue[Out any](msg Out, shape MarshalShape[Out], opts Options) any {
	if shape.WellKnown != nil {
		v, err := shape.WellKnown.Wrap(msg)
		if err != nil {
			// Wrap is defined over every value of Out; a well-known type's
			// Wrap hook is expected to be total, matching spec.md §7's
			// "encoding is total" invariant for the binary side.
			panic(fmt.Sprintf("pbjson: well-known Wrap failed: %v", err))
		}
		return v
	}
	obj := make(Obj, 0, len(shape.Fields))
	for _, f := range shape.Fields {
		kv, ok := f.WriteTo(msg, opts)
		if ok {
			obj = append(obj, kv)
		}
	}
	return obj
}

// Unmarshal parses data as JSON and decodes it against shape.
func Unmarshal[Out any](data []byte, shape Shape[Out], opts Options) (Out, error) {
	var zero Out
	v, err := ParseValue(data)
	if err != nil {
		return zero, err
	}
	return unmarshalValue(v, shape, opts)
}

// Marshal encodes msg against shape to canonical JSON text.
func Marshal[Out any](msg Out, shape MarshalShape[Out], opts Options) ([]byte, error) {
	return MarshalValue(marshalValue(msg, shape, opts))
}
