package example

import (
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbmerge"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
)

// Person exercises a repeated sub-message field (Addresses), a packed
// repeated scalar field (LuckyNumbers), and a map field (Nicknames) in one
// message.
type Person struct {
	Name         string
	Addresses    []Address
	LuckyNumbers []int32
	Nicknames    []pbspec.MapEntry[string, string]
}

// PersonDecodeShape is Person's binary decode spec.
func PersonDecodeShape() pbcodec.Shape[Person] {
	return pbcodec.Shape[Person]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "name", pbspec.String(), pbspec.Proto3[string]()),
			pbspec.Repeated(2, addressMessageSpec()),
			pbspec.Repeated(3, pbspec.Int32()),
			pbspec.Map(4, pbspec.String(), pbspec.String()),
		},
		Build: func(vals []any) (Person, error) {
			return Person{
				Name:         vals[0].(string),
				Addresses:    vals[1].([]Address),
				LuckyNumbers: vals[2].([]int32),
				Nicknames:    vals[3].([]pbspec.MapEntry[string, string]),
			}, nil
		},
	}
}

// PersonEncodeShape is Person's binary encode spec. LuckyNumbers is declared
// Packed, matching proto3's default packing for scalar repeated fields.
func PersonEncodeShape() pbcodec.EncodeShape[Person] {
	return pbcodec.EncodeShape[Person]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Person]{
			pbspec.BasicEncode(1, pbspec.String(), pbspec.Proto3[string](), func(p Person) string { return p.Name }),
			pbspec.RepeatedEncode(2, addressMessageSpec(), pbspec.NotPacked, func(p Person) []Address { return p.Addresses }),
			pbspec.RepeatedEncode(3, pbspec.Int32(), pbspec.Packed, func(p Person) []int32 { return p.LuckyNumbers }),
			pbspec.MapEncode(4, pbspec.String(), pbspec.String(), func(p Person) []pbspec.MapEntry[string, string] { return p.Nicknames }),
		},
	}
}

// MarshalPerson is Person's to_proto.
func MarshalPerson(p Person, mode pbwire.Mode) []byte {
	return pbcodec.Marshal(p, PersonEncodeShape(), mode)
}

// UnmarshalPerson is Person's from_proto.
func UnmarshalPerson(data []byte) (Person, error) {
	p, _, err := pbcodec.Unmarshal(data, PersonDecodeShape())
	return p, err
}

// PersonJSONDecodeShape is Person's JSON decode spec.
func PersonJSONDecodeShape() pbjson.Shape[Person] {
	return pbjson.Shape[Person]{
		Fields: []pbjson.DecodeField{
			pbjson.Basic("name", "name", pbjson.StringScalar(), pbspec.Proto3[string]()),
			pbjson.RepeatedMessage("addresses", "addresses", AddressJSONDecodeShape()),
			pbjson.Repeated("lucky_numbers", "luckyNumbers", pbjson.Int32Scalar()),
			pbjson.Map("nicknames", "nicknames", pbjson.StringMapKey(), pbjson.StringScalar()),
		},
		Build: func(vals []any) (Person, error) {
			return Person{
				Name:         vals[0].(string),
				Addresses:    vals[1].([]Address),
				LuckyNumbers: vals[2].([]int32),
				Nicknames:    vals[3].([]pbspec.MapEntry[string, string]),
			}, nil
		},
	}
}

// PersonJSONEncodeShape is Person's JSON encode spec.
func PersonJSONEncodeShape() pbjson.MarshalShape[Person] {
	return pbjson.MarshalShape[Person]{
		Fields: []pbjson.EncodeField[Person]{
			pbjson.BasicEncode("name", "name", pbjson.StringScalar(), pbspec.Proto3[string](), func(p Person) string { return p.Name }),
			pbjson.RepeatedMessageEncode("addresses", "addresses", AddressJSONEncodeShape(), func(p Person) []Address { return p.Addresses }),
			pbjson.RepeatedEncode("lucky_numbers", "luckyNumbers", pbjson.Int32Scalar(), func(p Person) []int32 { return p.LuckyNumbers }),
			pbjson.MapEncode("nicknames", "nicknames", pbjson.StringMapKey(), pbjson.StringScalar(), func(p Person) []pbspec.MapEntry[string, string] { return p.Nicknames }),
		},
	}
}

// MergePerson composes pbmerge's primitives field-by-field.
func MergePerson(a, b Person) Person {
	return Person{
		Name:         pbmerge.Scalar(a.Name, b.Name),
		Addresses:    pbmerge.Repeated(a.Addresses, b.Addresses),
		LuckyNumbers: pbmerge.Repeated(a.LuckyNumbers, b.LuckyNumbers),
		Nicknames:    pbmerge.Map(a.Nicknames, b.Nicknames),
	}
}
