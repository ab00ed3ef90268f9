package pbwire

import "fmt"

// FieldKind is the wire-level shape a scalar protobuf type is framed as.
// Every protobuf scalar type maps to exactly one FieldKind; this determines
// both how Reader frames the bytes on decode and whether a repeated field of
// that kind may be packed.
type FieldKind byte

const (
	KindVarint FieldKind = iota
	KindFixed64
	KindLengthDelimited
	KindFixed32
)

func (k FieldKind) String() string {
	switch k {
	case KindVarint:
		return "varint"
	case KindFixed64:
		return "fixed64"
	case KindLengthDelimited:
		return "length-delimited"
	case KindFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("FieldKind(%d)", byte(k))
	}
}

// wireType is the 3-bit value carried in a tag; it is the on-the-wire
// encoding of a FieldKind, with groups (3, 4) rejected by Reader.
type wireType byte

const (
	wireVarint          = wireType(0)
	wireFixed64         = wireType(1)
	wireBytes           = wireType(2)
	wireStartGroup      = wireType(3) // legacy proto2 groups; unsupported
	wireEndGroup        = wireType(4) // legacy proto2 groups; unsupported
	wireFixed32         = wireType(5)
)

func (wt wireType) kind() (FieldKind, bool) {
	switch wt {
	case wireVarint:
		return KindVarint, true
	case wireFixed64:
		return KindFixed64, true
	case wireBytes:
		return KindLengthDelimited, true
	case wireFixed32:
		return KindFixed32, true
	default:
		return 0, false
	}
}

func (k FieldKind) wireType() wireType {
	switch k {
	case KindVarint:
		return wireVarint
	case KindFixed64:
		return wireFixed64
	case KindLengthDelimited:
		return wireBytes
	case KindFixed32:
		return wireFixed32
	}
	panic("pbwire: invalid FieldKind")
}

// WireField is the tagged value a Reader produces for one wire occurrence of
// a field. It is transient: it is only valid for the duration of one
// field-decoding step, since LengthDelimited borrows into the Reader's
// backing buffer.
type WireField struct {
	Kind FieldKind

	Varint  uint64 // valid when Kind == KindVarint
	Fixed32 uint32 // valid when Kind == KindFixed32
	Fixed64 uint64 // valid when Kind == KindFixed64

	// Data, Offset, Length describe a borrow into the Reader's buffer,
	// valid when Kind == KindLengthDelimited. Bytes() returns the slice.
	Data   []byte
	Offset int
	Length int
}

// Bytes returns the borrowed payload of a LengthDelimited field.
func (f WireField) Bytes() []byte {
	return f.Data[f.Offset : f.Offset+f.Length]
}
