package example

import (
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbmerge"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// Address is the canonical round-trip scenario named in spec.md's glossary:
// encoding {Street: "Main", Number: 42, Planet: PlanetMars} then decoding
// yields the same record, and the zero value encodes to zero bytes.
type Address struct {
	Street string
	Number int32
	Planet Planet
}

// AddressDecodeShape is Address's binary decode spec.
func AddressDecodeShape() pbcodec.Shape[Address] {
	return pbcodec.Shape[Address]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "street", pbspec.String(), pbspec.Proto3[string]()),
			pbspec.Basic(2, "number", pbspec.Int32(), pbspec.Proto3[int32]()),
			pbspec.Basic(3, "planet", PlanetSpec(), pbspec.Proto3[Planet]()),
		},
		Build: func(vals []any) (Address, error) {
			return Address{Street: vals[0].(string), Number: vals[1].(int32), Planet: vals[2].(Planet)}, nil
		},
	}
}

// AddressEncodeShape is Address's binary encode spec.
func AddressEncodeShape() pbcodec.EncodeShape[Address] {
	return pbcodec.EncodeShape[Address]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Address]{
			pbspec.BasicEncode(1, pbspec.String(), pbspec.Proto3[string](), func(a Address) string { return a.Street }),
			pbspec.BasicEncode(2, pbspec.Int32(), pbspec.Proto3[int32](), func(a Address) int32 { return a.Number }),
			pbspec.BasicEncode(3, PlanetSpec(), pbspec.Proto3[Planet](), func(a Address) Planet { return a.Planet }),
		},
	}
}

// addressMessageSpec is the TypedSpec used wherever Address is nested inside
// another message (Person.Addresses, here).
func addressMessageSpec() pbspec.TypedSpec[Address] {
	return pbspec.Message(
		func(r *pbwire.Reader) (Address, error) {
			a, _, err := pbcodec.UnmarshalReader(r, AddressDecodeShape())
			return a, err
		},
		func(w *pbwire.Writer, a Address) { pbcodec.MarshalWriter(w, a, AddressEncodeShape()) },
		func(a Address) bool { return a == Address{} },
	)
}

// MarshalAddress is Address's to_proto.
func MarshalAddress(a Address, mode pbwire.Mode) []byte {
	return pbcodec.Marshal(a, AddressEncodeShape(), mode)
}

// UnmarshalAddress is Address's from_proto.
func UnmarshalAddress(data []byte) (Address, error) {
	a, _, err := pbcodec.Unmarshal(data, AddressDecodeShape())
	return a, err
}

// AddressJSONDecodeShape is Address's JSON decode spec (to_json/from_json).
func AddressJSONDecodeShape() pbjson.Shape[Address] {
	return pbjson.Shape[Address]{
		Fields: []pbjson.DecodeField{
			pbjson.Basic("street", "street", pbjson.StringScalar(), pbspec.Proto3[string]()),
			pbjson.Basic("number", "number", pbjson.Int32Scalar(), pbspec.Proto3[int32]()),
			pbjson.Basic("planet", "planet", pbjson.EnumScalar(PlanetMapping(), func() bool { return true }), pbspec.Proto3[Planet]()),
		},
		Build: func(vals []any) (Address, error) {
			return Address{Street: vals[0].(string), Number: vals[1].(int32), Planet: vals[2].(Planet)}, nil
		},
	}
}

// AddressJSONEncodeShape is Address's JSON encode spec.
func AddressJSONEncodeShape() pbjson.MarshalShape[Address] {
	return pbjson.MarshalShape[Address]{
		Fields: []pbjson.EncodeField[Address]{
			pbjson.BasicEncode("street", "street", pbjson.StringScalar(), pbspec.Proto3[string](), func(a Address) string { return a.Street }),
			pbjson.BasicEncode("number", "number", pbjson.Int32Scalar(), pbspec.Proto3[int32](), func(a Address) int32 { return a.Number }),
			pbjson.BasicEncode("planet", "planet", pbjson.EnumScalar(PlanetMapping(), func() bool { return true }), pbspec.Proto3[Planet](), func(a Address) Planet { return a.Planet }),
		},
	}
}

// MergeAddress implements protobuf merge semantics field-by-field, as a
// generated Merge function would, by composing pbmerge's primitives.
func MergeAddress(a, b Address) Address {
	return Address{
		Street: pbmerge.Scalar(a.Street, b.Street),
		Number: pbmerge.Scalar(a.Number, b.Number),
		Planet: pbmerge.Scalar(a.Planet, b.Planet),
	}
}
