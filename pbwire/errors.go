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

// Package pbwire implements the low-level protobuf wire format: varints,
// zigzag, fixed32/64, and length-delimited framing, plus the WireField value
// that higher layers decode into typed fields.
package pbwire

import "fmt"

// ErrKind distinguishes the taxonomy of wire-level decode failures.
type ErrKind int

const (
	// ErrTruncated means the buffer ran out of bytes mid-field.
	ErrTruncated ErrKind = iota
	// ErrIllegalWireType means a tag decoded to wire type 3 or 4 (a group),
	// or some other value outside 0,1,2,5.
	ErrIllegalWireType
	// ErrVarintOverflow means a varint ran past 10 bytes without terminating.
	ErrVarintOverflow
)

func (k ErrKind) String() string {
	switch k {
	case ErrTruncated:
		return "truncated"
	case ErrIllegalWireType:
		return "illegal wire type"
	case ErrVarintOverflow:
		return "varint overflow"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is returned by Reader methods. It carries enough context for the
// decode layer (pbcodec) to wrap it with a field name without having to
// string-match.
type Error struct {
	Kind ErrKind
	Pos  int // buffer offset at which the failure was detected
}

func (e *Error) Error() string {
	return fmt.Sprintf("pbwire: %s at offset %d", e.Kind, e.Pos)
}

func newErr(kind ErrKind, pos int) error {
	return &Error{Kind: kind, Pos: pos}
}
