package pbcodec

import (
	"testing"

	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

type numMsg struct {
	N int32
}

func numMsgShape() Shape[numMsg] {
	return Shape[numMsg]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "n", pbspec.Int32(), pbspec.Proto3[int32]()),
		},
		Build: func(vals []any) (numMsg, error) { return numMsg{N: vals[0].(int32)}, nil },
	}
}

func TestUnmarshalSkipsUnknownFieldOutsideExtensionRange(t *testing.T) {
	w := pbwire.NewWriter(pbwire.Balanced)
	w.WriteTag(1, pbwire.KindVarint)
	w.WriteVarint(uint64(42))
	w.WriteTag(99, pbwire.KindVarint) // unknown, no declared extension ranges
	w.WriteVarint(uint64(7))

	got, exts, err := Unmarshal(w.Contents(), numMsgShape())
	require.NoError(t, err)
	require.Equal(t, numMsg{N: 42}, got)
	require.Equal(t, 0, exts.Len())
}

type repeatedMsg struct {
	Vals []int32
}

func repeatedMsgDecodeShape() Shape[repeatedMsg] {
	return Shape[repeatedMsg]{
		Fields: []pbspec.DecodeField{
			pbspec.Repeated(1, pbspec.Int32()),
		},
		Build: func(vals []any) (repeatedMsg, error) { return repeatedMsg{Vals: vals[0].([]int32)}, nil },
	}
}

func repeatedMsgEncodeShape(packed bool) EncodeShape[repeatedMsg] {
	mode := pbspec.NotPacked
	if packed {
		mode = pbspec.Packed
	}
	return EncodeShape[repeatedMsg]{
		Proto3: true,
		Fields: []pbspec.EncodeField[repeatedMsg]{
			pbspec.RepeatedEncode(1, pbspec.Int32(), mode, func(m repeatedMsg) []int32 { return m.Vals }),
		},
	}
}

func TestPackedAndUnpackedRepeatedFieldsDecodeEquivalently(t *testing.T) {
	m := repeatedMsg{Vals: []int32{1, 2, 3}}
	packed := Marshal(m, repeatedMsgEncodeShape(true), pbwire.Balanced)
	unpacked := Marshal(m, repeatedMsgEncodeShape(false), pbwire.Balanced)
	require.NotEqual(t, packed, unpacked)

	gotPacked, _, err := Unmarshal(packed, repeatedMsgDecodeShape())
	require.NoError(t, err)
	gotUnpacked, _, err := Unmarshal(unpacked, repeatedMsgDecodeShape())
	require.NoError(t, err)
	require.Equal(t, m.Vals, gotPacked.Vals)
	require.Equal(t, m.Vals, gotUnpacked.Vals)
}

func TestUnmarshalReaderMatchesUnmarshal(t *testing.T) {
	data := Marshal(numMsg{N: 9}, EncodeShape[numMsg]{
		Proto3: true,
		Fields: []pbspec.EncodeField[numMsg]{
			pbspec.BasicEncode(1, pbspec.Int32(), pbspec.Proto3[int32](), func(m numMsg) int32 { return m.N }),
		},
	}, pbwire.Balanced)

	r := pbwire.NewReader(data)
	got, _, err := UnmarshalReader(r, numMsgShape())
	require.NoError(t, err)
	require.Equal(t, numMsg{N: 9}, got)
}
