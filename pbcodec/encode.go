package pbcodec

import (
	"github.com/mistsys/protospec/pbext"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// EncodeShape describes one message type's encode-side spec.
type EncodeShape[Out any] struct {
	Fields []pbspec.EncodeField[Out]
	Proto3 bool
	// Extensions, if non-nil, extracts the message's preserved extension
	// set so it can be re-emitted after the regular fields (spec.md §4.7).
	Extensions func(Out) *pbext.Extensions
}

// Marshal walks shape.Fields in order, writing each field's tag+value (or
// nothing, per each field kind's omission rule) via a Writer in the given
// Mode, then appends any preserved extensions. Encoding is total: given a
// well-typed Out value it cannot fail (spec.md §7).
func Marshal[Out any](msg Out, shape EncodeShape[Out], mode pbwire.Mode) []byte {
	w := pbwire.NewWriter(mode)
	MarshalWriter(w, msg, shape)
	return w.Contents()
}

// MarshalWriter is Marshal against an already-open Writer: a sub-message
// TypedSpec's encode function (pbspec.Message/MessageOpt) calls this to emit
// a nested message's fields into the parent's sub-Writer.
func MarshalWriter[Out any](w *pbwire.Writer, msg Out, shape EncodeShape[Out]) {
	for _, f := range shape.Fields {
		f.WriteTo(w, msg, shape.Proto3)
	}
	if shape.Extensions != nil {
		if ext := shape.Extensions(msg); ext != nil {
			ext.WriteTo(w)
		}
	}
}
