package wellknown

import (
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
)

// Empty mirrors google.protobuf.Empty: a message with no fields, used for
// RPC methods that take or return nothing (spec.md §4.9's service stubs).
type Empty struct{}

// EmptyDecodeShape is Empty's (field-less) binary decode spec.
func EmptyDecodeShape() pbcodec.Shape[Empty] {
	return pbcodec.Shape[Empty]{
		Build: func(vals []any) (Empty, error) { return Empty{}, nil },
	}
}

// EmptyEncodeShape is Empty's (field-less) binary encode spec.
func EmptyEncodeShape() pbcodec.EncodeShape[Empty] {
	return pbcodec.EncodeShape[Empty]{Proto3: true}
}

// EmptyJSON is Empty's pbjson.WellKnownHooks: always the empty JSON object
// "{}", regardless of what (if anything) a well-behaved peer sends.
func EmptyJSON() *pbjson.WellKnownHooks[Empty] {
	return &pbjson.WellKnownHooks[Empty]{
		Wrap:   func(Empty) (any, error) { return pbjson.Obj(nil), nil },
		Unwrap: func(any) (Empty, error) { return Empty{}, nil },
	}
}
