package example

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbmerge"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

// mixedMsg is a test-only fixture combining a repeated, a map, and a oneof
// field in one message, to exercise spec.md §8's merge-concat property
// across all three at once: none of Address/Person/Envelope carries all
// three together.
type mixedMsg struct {
	Tags    []int32
	Labels  []pbspec.MapEntry[string, string]
	Payload pbspec.OneofValue
}

func mixedDecodeShape() pbcodec.Shape[mixedMsg] {
	return pbcodec.Shape[mixedMsg]{
		Fields: []pbspec.DecodeField{
			pbspec.Repeated(1, pbspec.Int32()),
			pbspec.Map(2, pbspec.String(), pbspec.String()),
			pbspec.Oneof("payload", []pbspec.OneofVariant{
				pbspec.OneofElem(3, "text", pbspec.String()),
				pbspec.OneofElem(4, "int", pbspec.Int32()),
			}),
		},
		Build: func(vals []any) (mixedMsg, error) {
			return mixedMsg{
				Tags:    vals[0].([]int32),
				Labels:  vals[1].([]pbspec.MapEntry[string, string]),
				Payload: vals[2].(pbspec.OneofValue),
			}, nil
		},
	}
}

func mixedEncodeShape() pbcodec.EncodeShape[mixedMsg] {
	return pbcodec.EncodeShape[mixedMsg]{
		Proto3: true,
		Fields: []pbspec.EncodeField[mixedMsg]{
			pbspec.RepeatedEncode(1, pbspec.Int32(), pbspec.Packed, func(m mixedMsg) []int32 { return m.Tags }),
			pbspec.MapEncode(2, pbspec.String(), pbspec.String(), func(m mixedMsg) []pbspec.MapEntry[string, string] { return m.Labels }),
			pbspec.OneofEncode([]pbspec.OneofVariantEncode{
				pbspec.OneofElemEncode(3, pbspec.String()),
				pbspec.OneofElemEncode(4, pbspec.Int32()),
			}, func(m mixedMsg) pbspec.OneofValue { return m.Payload }),
		},
	}
}

func mergeMixed(a, b mixedMsg) mixedMsg {
	return mixedMsg{
		Tags:    pbmerge.Repeated(a.Tags, b.Tags),
		Labels:  pbmerge.Map(a.Labels, b.Labels),
		Payload: pbmerge.Oneof(a.Payload, b.Payload),
	}
}

// TestMergeConcatEquivalence checks spec.md's property 4 literally:
// from_proto(to_proto(a) ++ to_proto(b)) == merge(a, b), for a message with
// a repeated, a map, and a oneof field all set on both a and b.
func TestMergeConcatEquivalence(t *testing.T) {
	a := mixedMsg{
		Tags:    []int32{1, 2},
		Labels:  []pbspec.MapEntry[string, string]{{Key: "k1", Value: "a1"}, {Key: "shared", Value: "fromA"}},
		Payload: pbspec.OneofValue{Tag: 3, Name: "text", Value: "hello from a"},
	}
	b := mixedMsg{
		Tags:    []int32{3, 4},
		Labels:  []pbspec.MapEntry[string, string]{{Key: "k2", Value: "b2"}, {Key: "shared", Value: "fromB"}},
		Payload: pbspec.OneofValue{Tag: 4, Name: "int", Value: int32(99)},
	}

	aBytes := pbcodec.Marshal(a, mixedEncodeShape(), pbwire.Balanced)
	bBytes := pbcodec.Marshal(b, mixedEncodeShape(), pbwire.Balanced)
	concatenated := append(append([]byte{}, aBytes...), bBytes...)

	gotFromConcat, _, err := pbcodec.Unmarshal(concatenated, mixedDecodeShape())
	require.NoError(t, err)

	merged := mergeMixed(a, b)

	if diff := cmp.Diff(merged, gotFromConcat); diff != "" {
		t.Errorf("merge-concat mismatch (-want merge, +got from_proto(concat)):\n%s", diff)
	}
}

// TestMergeConcatEquivalenceOneofNotSetOnB checks the same property when b
// leaves the oneof unset: a's variant must survive both the in-memory merge
// and the concatenated-decode path.
func TestMergeConcatEquivalenceOneofNotSetOnB(t *testing.T) {
	a := mixedMsg{
		Tags:    []int32{5},
		Labels:  []pbspec.MapEntry[string, string]{{Key: "only", Value: "a"}},
		Payload: pbspec.OneofValue{Tag: 3, Name: "text", Value: "stays set"},
	}
	b := mixedMsg{Tags: []int32{6}}

	aBytes := pbcodec.Marshal(a, mixedEncodeShape(), pbwire.Balanced)
	bBytes := pbcodec.Marshal(b, mixedEncodeShape(), pbwire.Balanced)
	concatenated := append(append([]byte{}, aBytes...), bBytes...)

	gotFromConcat, _, err := pbcodec.Unmarshal(concatenated, mixedDecodeShape())
	require.NoError(t, err)

	merged := mergeMixed(a, b)

	if diff := cmp.Diff(merged, gotFromConcat); diff != "" {
		t.Errorf("merge-concat mismatch (-want merge, +got from_proto(concat)):\n%s", diff)
	}
}
