// Package pbext stores and resolves proto2 extension fields attached to a
// message: the wire occurrences of any tag not named by the message's own
// spec, but falling within a declared extension range, are preserved
// verbatim across a decode→encode round trip (spec.md §4.7).
package pbext

import (
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// Range is one declared extension tag range, inclusive on both ends.
type Range struct {
	Start, End uint32
}

// Contains reports whether tag falls within the range.
func (r Range) Contains(tag uint32) bool { return tag >= r.Start && tag <= r.End }

// InRanges reports whether tag falls within any of ranges.
func InRanges(tag uint32, ranges []Range) bool {
	for _, r := range ranges {
		if r.Contains(tag) {
			return true
		}
	}
	return false
}

// entry is one preserved (tag, wire field) pair. Length-delimited payloads
// are copied out of the decoder's input buffer so they outlive it.
type entry struct {
	tag     uint32
	kind    pbwire.FieldKind
	varint  uint64
	fixed32 uint32
	fixed64 uint64
	bytes   []byte
}

// Extensions is a sequence of (tag, wire field) pairs preserved verbatim
// across decode→encode, in the order they were first appended.
type Extensions struct {
	entries []entry
}

// Append records one wire occurrence of an extension tag. Called by
// pbcodec.Unmarshal for every tag that falls within a declared extension
// range but isn't one of the message's own fields.
func (e *Extensions) Append(tag uint32, f pbwire.WireField) {
	entry := entry{tag: tag, kind: f.Kind, varint: f.Varint, fixed32: f.Fixed32, fixed64: f.Fixed64}
	if f.Kind == pbwire.KindLengthDelimited {
		src := f.Bytes()
		entry.bytes = make([]byte, len(src))
		copy(entry.bytes, src)
	}
	e.entries = append(e.entries, entry)
}

// WriteTo re-emits every preserved extension field, in the order it was
// captured, after a message's own regular fields (spec.md §4.7).
func (e *Extensions) WriteTo(w *pbwire.Writer) {
	for _, en := range e.entries {
		w.WriteTag(en.tag, en.kind)
		switch en.kind {
		case pbwire.KindVarint:
			w.WriteVarint(en.varint)
		case pbwire.KindFixed32:
			w.WriteFixed32(en.fixed32)
		case pbwire.KindFixed64:
			w.WriteFixed64(en.fixed64)
		case pbwire.KindLengthDelimited:
			w.WriteLengthDelimited(en.bytes)
		}
	}
}

func (e *entry) wireField() pbwire.WireField {
	return pbwire.WireField{
		Kind: e.kind, Varint: e.varint, Fixed32: e.fixed32, Fixed64: e.fixed64,
		Data: e.bytes, Offset: 0, Length: len(e.bytes),
	}
}

// Get scans the extensions for tag and decodes it with spec. The second
// return value is false if tag was never captured.
func Get[T any](e *Extensions, tag uint32, spec pbspec.TypedSpec[T]) (T, bool, error) {
	for i := range e.entries {
		if e.entries[i].tag == tag {
			v, err := spec.Decode(e.entries[i].wireField())
			return v, true, err
		}
	}
	var zero T
	return zero, false, nil
}

// GetExn is Get without the presence flag: it returns spec's proto3 zero
// value when tag was never captured.
func GetExn[T any](e *Extensions, tag uint32, spec pbspec.TypedSpec[T]) (T, error) {
	v, ok, err := Get(e, tag, spec)
	if !ok {
		return spec.Zero(), nil
	}
	return v, err
}

// Set replaces (or, if absent, appends) the extension at tag with a freshly
// encoded value.
func Set[T any](e *Extensions, tag uint32, spec pbspec.TypedSpec[T], v T) {
	// Encode the value alone (no tag), then re-read it back through a
	// Reader so the resulting entry shares the exact on-wire representation
	// Get expects, regardless of spec.Kind.
	w := pbwire.NewWriter(pbwire.Balanced)
	spec.Encode(w, v)
	payload := w.Contents()

	newEntry := entry{tag: tag, kind: spec.Kind}
	switch spec.Kind {
	case pbwire.KindVarint:
		r := pbwire.NewReader(payload)
		newEntry.varint, _ = r.ReadVarint()
	case pbwire.KindFixed32:
		r := pbwire.NewReader(payload)
		newEntry.fixed32, _ = r.ReadFixed32()
	case pbwire.KindFixed64:
		r := pbwire.NewReader(payload)
		newEntry.fixed64, _ = r.ReadFixed64()
	case pbwire.KindLengthDelimited:
		r := pbwire.NewReader(payload)
		off, n, _ := r.ReadLengthDelimited()
		newEntry.bytes = payload[off : off+n]
	}

	for i := range e.entries {
		if e.entries[i].tag == tag {
			e.entries[i] = newEntry
			return
		}
	}
	e.entries = append(e.entries, newEntry)
}

// Clear removes the extension at tag, if present.
func Clear(e *Extensions, tag uint32) {
	for i := range e.entries {
		if e.entries[i].tag == tag {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

// Len reports how many extension entries are currently recorded.
func (e *Extensions) Len() int { return len(e.entries) }
