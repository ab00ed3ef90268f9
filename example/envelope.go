package example

import (
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbext"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// Envelope is a proto2-flavored fixture: a required field, a two-way oneof,
// and a declared extension range, together. ID has no zero-value default
// (Required), Payload is exactly one of TextPayload/BinaryPayload, and any
// wire tag in [100,199] that Envelope doesn't itself name is preserved
// verbatim in Extensions across a decode/encode round trip.
type Envelope struct {
	ID         string
	Payload    pbspec.OneofValue
	Extensions pbext.Extensions
}

// envelopeExtEnd is inclusive (pbext.Range's Start/End bound the same way),
// so this declares tags 100-199.
const envelopeExtStart, envelopeExtEnd = 100, 199

// debugNoteTag is an example extension field: a string note attached out of
// band, the way a proto2 `extend` block would declare one.
const debugNoteTag = 150

// EnvelopeDecodeShape is Envelope's binary decode spec.
func EnvelopeDecodeShape() pbcodec.Shape[Envelope] {
	return pbcodec.Shape[Envelope]{
		Fields: []pbspec.DecodeField{
			pbspec.BasicReq(1, "id", pbspec.String()),
			pbspec.Oneof("payload", []pbspec.OneofVariant{
				pbspec.OneofElem(2, "text_payload", pbspec.String()),
				pbspec.OneofElem(3, "binary_payload", pbspec.Bytes()),
			}),
		},
		ExtensionRanges: []pbext.Range{{Start: envelopeExtStart, End: envelopeExtEnd}},
		Build: func(vals []any) (Envelope, error) {
			return Envelope{ID: vals[0].(string), Payload: vals[1].(pbspec.OneofValue)}, nil
		},
	}
}

// EnvelopeEncodeShape is Envelope's binary encode spec.
func EnvelopeEncodeShape() pbcodec.EncodeShape[Envelope] {
	return pbcodec.EncodeShape[Envelope]{
		Fields: []pbspec.EncodeField[Envelope]{
			pbspec.BasicReqEncode(1, pbspec.String(), func(e Envelope) string { return e.ID }),
			pbspec.OneofEncode([]pbspec.OneofVariantEncode{
				pbspec.OneofElemEncode(2, pbspec.String()),
				pbspec.OneofElemEncode(3, pbspec.Bytes()),
			}, func(e Envelope) pbspec.OneofValue { return e.Payload }),
		},
		Extensions: func(e Envelope) *pbext.Extensions { return &e.Extensions },
	}
}

// MarshalEnvelope is Envelope's to_proto.
func MarshalEnvelope(e Envelope, mode pbwire.Mode) []byte {
	return pbcodec.Marshal(e, EnvelopeEncodeShape(), mode)
}

// UnmarshalEnvelope is Envelope's from_proto. pbcodec.Unmarshal returns the
// captured extensions alongside the built message rather than through
// Shape.Build, so this wrapper re-attaches them.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	e, exts, err := pbcodec.Unmarshal(data, EnvelopeDecodeShape())
	if err != nil {
		return Envelope{}, err
	}
	e.Extensions = exts
	return e, nil
}

// DebugNote reads the debug_note extension, if present.
func (e *Envelope) DebugNote() (string, bool, error) {
	return pbext.Get(&e.Extensions, debugNoteTag, pbspec.String())
}

// SetDebugNote sets the debug_note extension.
func (e *Envelope) SetDebugNote(v string) {
	pbext.Set(&e.Extensions, debugNoteTag, pbspec.String(), v)
}

// jsonOneofToSpec converts a pbjson.OneofValue into a pbspec.OneofValue:
// the two packages define structurally identical but distinct types, since
// pbjson's oneof decoding has no streaming Sentinel to share with pbspec's.
func jsonOneofToSpec(ov pbjson.OneofValue) pbspec.OneofValue {
	return pbspec.OneofValue{Tag: ov.Tag, Name: ov.Name, Value: ov.Value}
}

func specOneofToJSON(ov pbspec.OneofValue) pbjson.OneofValue {
	return pbjson.OneofValue{Tag: ov.Tag, Name: ov.Name, Value: ov.Value}
}

// EnvelopeJSONDecodeShape is Envelope's JSON decode spec. Extensions have no
// canonical JSON representation and are omitted here, matching canonical
// proto3 JSON's treatment of proto2 extensions.
func EnvelopeJSONDecodeShape() pbjson.Shape[Envelope] {
	return pbjson.Shape[Envelope]{
		Fields: []pbjson.DecodeField{
			pbjson.BasicReq("id", "id", pbjson.StringScalar()),
			pbjson.Oneof("payload", []pbjson.OneofVariant{
				pbjson.OneofElem(2, "text_payload", "textPayload", pbjson.StringScalar()),
				pbjson.OneofElem(3, "binary_payload", "binaryPayload", pbjson.BytesScalar()),
			}),
		},
		Build: func(vals []any) (Envelope, error) {
			return Envelope{ID: vals[0].(string), Payload: jsonOneofToSpec(vals[1].(pbjson.OneofValue))}, nil
		},
	}
}

// EnvelopeJSONEncodeShape is Envelope's JSON encode spec.
func EnvelopeJSONEncodeShape() pbjson.MarshalShape[Envelope] {
	return pbjson.MarshalShape[Envelope]{
		Fields: []pbjson.EncodeField[Envelope]{
			pbjson.BasicReqEncode("id", "id", pbjson.StringScalar(), func(e Envelope) string { return e.ID }),
			pbjson.OneofEncode([]pbjson.OneofVariantEncode{
				pbjson.OneofElemEncode(2, "text_payload", "textPayload", pbjson.StringScalar()),
				pbjson.OneofElemEncode(3, "binary_payload", "binaryPayload", pbjson.BytesScalar()),
			}, func(e Envelope) pbjson.OneofValue { return specOneofToJSON(e.Payload) }),
		},
	}
}
