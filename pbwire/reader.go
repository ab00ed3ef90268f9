// Go support for Protocol Buffers - Google's data interchange format
//
// Copyright 2010 The Go Authors.  All rights reserved.
// https://github.com/golang/protobuf
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
//     * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//     * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
//     * Neither the name of Google Inc. nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package pbwire

import (
	"github.com/nsd20463/cpuendian"
)

// Reader is a cursor over a byte buffer implementing the wire-format
// primitives. It borrows the buffer passed to NewReader for its entire
// lifetime; LengthDelimited fields it produces point into that buffer.
type Reader struct {
	buf   []byte
	index int
}

// NewReader wraps buf for reading. buf is not copied; the caller must not
// mutate it while the Reader (or any WireField it produced) is still in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// HasMore reports whether any bytes remain to be read.
func (r *Reader) HasMore() bool {
	return r.index < len(r.buf)
}

// Reset rewinds the read cursor to offset, which must have previously come
// from Offset().
func (r *Reader) Reset(offset int) {
	r.index = offset
}

// Offset returns the current read cursor position.
func (r *Reader) Offset() int {
	return r.index
}

// ToList decodes every (tag, WireField) pair remaining in the buffer,
// skipping length-delimited payloads without recursing into them. It exists
// for debugging/inspection, not for production decode paths.
func (r *Reader) ToList() ([]struct {
	Tag   uint32
	Field WireField
}, error) {
	var out []struct {
		Tag   uint32
		Field WireField
	}
	for r.HasMore() {
		tag, f, err := r.ReadField()
		if err != nil {
			return out, err
		}
		out = append(out, struct {
			Tag   uint32
			Field WireField
		}{tag, f})
	}
	return out, nil
}

// ReadVarint decodes a base-128 little-endian varint, at most 10 bytes.
func (r *Reader) ReadVarint() (uint64, error) {
	var x uint64
	i := r.index
	n := len(r.buf)

	for shift := uint(0); shift < 63; shift += 7 {
		if i >= n {
			return 0, newErr(ErrTruncated, i)
		}
		b := r.buf[i]
		i++
		x |= (uint64(b) & 0x7f) << shift
		if b < 0x80 {
			r.index = i
			return x, nil
		}
	}
	// 10th byte: only the low bit may be set, everything else is overflow.
	if i >= n {
		return 0, newErr(ErrTruncated, i)
	}
	b := r.buf[i]
	i++
	if b > 1 {
		return 0, newErr(ErrVarintOverflow, i)
	}
	x |= uint64(b) << 63
	r.index = i
	return x, nil
}

func le32tocpu(x uint32) uint32 {
	if cpuendian.Big {
		x = ((x & 0xff) << 24) | ((x & 0xff00) << 8) | ((x & 0xff0000) >> 8) | ((x & 0xff000000) >> 24)
	}
	return x
}

func le64tocpu(x uint64) uint64 {
	if cpuendian.Big {
		x = ((x & 0xff) << 56) | ((x & 0xff00) << 40) | ((x & 0xff0000) << 24) | ((x & 0xff000000) << 8) |
			((x & 0xff00000000) >> 8) | ((x & 0xff0000000000) >> 24) | ((x & 0xff000000000000) >> 40) | ((x & 0xff00000000000000) >> 56)
	}
	return x
}

// ReadFixed32 decodes a little-endian 32-bit value.
func (r *Reader) ReadFixed32() (uint32, error) {
	i := r.index
	end := i + 4
	if end > len(r.buf) {
		return 0, newErr(ErrTruncated, i)
	}
	var x uint32
	for j := 0; j < 4; j++ {
		x |= uint32(r.buf[i+j]) << (8 * uint(j))
	}
	r.index = end
	return le32tocpu(x), nil
}

// ReadFixed64 decodes a little-endian 64-bit value.
func (r *Reader) ReadFixed64() (uint64, error) {
	i := r.index
	end := i + 8
	if end > len(r.buf) {
		return 0, newErr(ErrTruncated, i)
	}
	var x uint64
	for j := 0; j < 8; j++ {
		x |= uint64(r.buf[i+j]) << (8 * uint(j))
	}
	r.index = end
	return le64tocpu(x), nil
}

// ReadLengthDelimited reads a varint length prefix then returns a borrow of
// the following bytes, advancing the cursor past them.
func (r *Reader) ReadLengthDelimited() (offset, length int, err error) {
	n, err := r.ReadVarint()
	if err != nil {
		return 0, 0, err
	}
	start := r.index
	end := start + int(n)
	if n > uint64(len(r.buf)) || end < start || end > len(r.buf) {
		return 0, 0, newErr(ErrTruncated, start)
	}
	r.index = end
	return start, int(n), nil
}

// ReadField reads one varint tag, decomposes it into field number and wire
// type, and reads the payload according to wire type.
func (r *Reader) ReadField() (fieldNumber uint32, field WireField, err error) {
	tag, err := r.ReadVarint()
	if err != nil {
		return 0, WireField{}, err
	}
	fieldNumber = uint32(tag >> 3)
	wt := wireType(tag & 7)
	kind, ok := wt.kind()
	if !ok {
		return fieldNumber, WireField{}, newErr(ErrIllegalWireType, r.index)
	}

	switch kind {
	case KindVarint:
		v, err := r.ReadVarint()
		if err != nil {
			return fieldNumber, WireField{}, err
		}
		return fieldNumber, WireField{Kind: KindVarint, Varint: v}, nil
	case KindFixed64:
		v, err := r.ReadFixed64()
		if err != nil {
			return fieldNumber, WireField{}, err
		}
		return fieldNumber, WireField{Kind: KindFixed64, Fixed64: v}, nil
	case KindFixed32:
		v, err := r.ReadFixed32()
		if err != nil {
			return fieldNumber, WireField{}, err
		}
		return fieldNumber, WireField{Kind: KindFixed32, Fixed32: v}, nil
	case KindLengthDelimited:
		off, length, err := r.ReadLengthDelimited()
		if err != nil {
			return fieldNumber, WireField{}, err
		}
		return fieldNumber, WireField{Kind: KindLengthDelimited, Data: r.buf, Offset: off, Length: length}, nil
	}
	panic("unreachable")
}

// skip advances past one wire field's payload of the given kind without
// returning its value.
func (r *Reader) skip(kind FieldKind) error {
	switch kind {
	case KindVarint:
		_, err := r.ReadVarint()
		return err
	case KindFixed32:
		_, err := r.ReadFixed32()
		return err
	case KindFixed64:
		_, err := r.ReadFixed64()
		return err
	case KindLengthDelimited:
		_, _, err := r.ReadLengthDelimited()
		return err
	}
	panic("unreachable")
}
