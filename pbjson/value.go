// Package pbjson implements the canonical proto3 JSON mapping (spec.md
// §4.6): per-field marshal/unmarshal dispatch against a generic JSON value
// tree, camelCase/proto-name aliasing, default-value elision, and the
// well-known-type hooks in wellknown/.
package pbjson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KV is one object member; Obj keeps members in declaration order so
// marshaled output's field order matches the message spec's field order.
type KV struct {
	Key string
	Val any
}

// Obj is an ordered JSON object, as built by Marshal and as well-known-type
// hooks' Wrap functions may return in place of a plain map.
type Obj []KV

// Get looks up key among o's members.
func (o Obj) Get(key string) (any, bool) {
	for _, kv := range o {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return nil, false
}

// Num wraps a pre-formatted numeric literal so MarshalValue writes it
// unquoted. Used for int32-family scalars and for double/float's
// emit-as-integer case.
type Num string

// MarshalValue serializes a pbjson value tree (Obj, []any, string, Num,
// bool, or nil) to compact JSON text.
func MarshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case Obj:
		buf.WriteByte('{')
		for i, kv := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(kv.Key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeValue(buf, kv.Val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Num:
		buf.WriteString(string(t))
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		return fmt.Errorf("pbjson: unsupported value type %T", v)
	}
	return nil
}

// ParseValue parses data into a generic tree: map[string]any for objects
// (key order is not preserved — decode only needs lookup-by-name), []any
// for arrays, json.Number (via Decoder.UseNumber) for numbers, string,
// bool, or nil.
func ParseValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &IllegalValueError{Type: "json", Detail: err.Error()}
	}
	return v, nil
}
