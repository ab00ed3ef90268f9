// Package pbcodec drives pbspec's declarative field descriptions against
// pbwire's Reader/Writer to implement the protobuf binary wire format:
// Unmarshal (spec.md §4.4) and Marshal (spec.md §4.5).
package pbcodec

import (
	"github.com/mistsys/protospec/pbext"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// dispatchThreshold is the max_tag cutoff (spec.md §4.4 step 1) below which
// Unmarshal uses a flat array keyed by tag instead of a map. It is a tunable,
// not a correctness requirement: both strategies dispatch identically.
const dispatchThreshold = 1024

// Shape describes one message type's decode-side spec: its ordered fields,
// any declared proto2 extension ranges, and the constructor that assembles
// the final Out value from the fields' decoded results in spec order.
type Shape[Out any] struct {
	Fields          []pbspec.DecodeField
	ExtensionRanges []pbext.Range
	Build           func(vals []any) (Out, error)
}

// dispatcher maps a wire tag to the index, within Fields, of the field that
// should receive it.
type dispatcher interface {
	lookup(tag uint32) (int, bool)
}

type arrayDispatcher []int // -1 for "no field"

func (d arrayDispatcher) lookup(tag uint32) (int, bool) {
	if int(tag) >= len(d) {
		return 0, false
	}
	idx := d[tag]
	return idx, idx >= 0
}

type mapDispatcher map[uint32]int

func (d mapDispatcher) lookup(tag uint32) (int, bool) {
	idx, ok := d[tag]
	return idx, ok
}

func buildDispatcher(fields []pbspec.DecodeField) dispatcher {
	maxTag := uint32(0)
	for _, f := range fields {
		for _, t := range f.Tags() {
			if t > maxTag {
				maxTag = t
			}
		}
	}
	if maxTag < dispatchThreshold {
		arr := make(arrayDispatcher, maxTag+1)
		for i := range arr {
			arr[i] = -1
		}
		for i, f := range fields {
			for _, t := range f.Tags() {
				arr[t] = i
			}
		}
		return arr
	}
	m := make(mapDispatcher, len(fields))
	for i, f := range fields {
		for _, t := range f.Tags() {
			m[t] = i
		}
	}
	return m
}

// Unmarshal decodes data against shape, returning the assembled message, any
// preserved proto2 extensions, and the first decode error encountered (a
// single malformed field fails the whole message, per spec.md §7).
func Unmarshal[Out any](data []byte, shape Shape[Out]) (Out, pbext.Extensions, error) {
	return UnmarshalReader(pbwire.NewReader(data), shape)
}

// UnmarshalReader is Unmarshal over an already-positioned Reader: a
// sub-message TypedSpec's decode function (pbspec.Message/MessageOpt) calls
// this against the Reader it is handed, rather than re-slicing bytes.
func UnmarshalReader[Out any](r *pbwire.Reader, shape Shape[Out]) (Out, pbext.Extensions, error) {
	var zero Out
	var exts pbext.Extensions

	disp := buildDispatcher(shape.Fields)
	sentinels := make([]pbspec.Sentinel, len(shape.Fields))
	for i, f := range shape.Fields {
		sentinels[i] = f.NewSentinel()
	}

	for r.HasMore() {
		tag, field, err := r.ReadField()
		if err != nil {
			return zero, exts, err
		}
		if idx, ok := disp.lookup(tag); ok {
			if err := sentinels[idx].Bind(tag, field); err != nil {
				return zero, exts, err
			}
			continue
		}
		if pbext.InRanges(tag, shape.ExtensionRanges) {
			exts.Append(tag, field)
		}
		// else: unknown field outside any extension range — silently skip;
		// ReadField already consumed its bytes.
	}

	vals := make([]any, len(shape.Fields))
	for i, s := range sentinels {
		v, err := s.Get()
		if err != nil {
			return zero, exts, err
		}
		vals[i] = v
	}
	out, err := shape.Build(vals)
	return out, exts, err
}
