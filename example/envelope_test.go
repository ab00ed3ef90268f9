package example

import (
	"testing"

	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRequiredFieldMissing(t *testing.T) {
	// BasicReqEncode always emits the id field, even when empty, so the wire
	// bytes are built by hand to leave the required field out entirely.
	w := pbwire.NewWriter(pbwire.Balanced)
	w.WriteTag(2, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("hi"))
	_, err := UnmarshalEnvelope(w.Contents())
	require.Error(t, err)
	var rerr *pbspec.RequiredFieldMissingError
	require.ErrorAs(t, err, &rerr)
}

func TestEnvelopeOneofRoundTrip(t *testing.T) {
	e := Envelope{ID: "msg-1", Payload: pbspec.OneofValue{Tag: 2, Name: "text_payload", Value: "hello"}}
	data := MarshalEnvelope(e, pbwire.Balanced)
	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)
	require.Equal(t, e.Payload, got.Payload)
}

func TestEnvelopeOneofLastOccurrenceWins(t *testing.T) {
	w := pbwire.NewWriter(pbwire.Balanced)
	w.WriteTag(1, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("msg-1"))
	w.WriteTag(2, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("first"))
	w.WriteTag(3, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("second"))

	got, err := UnmarshalEnvelope(w.Contents())
	require.NoError(t, err)
	require.Equal(t, uint32(3), got.Payload.Tag)
	require.Equal(t, []byte("second"), got.Payload.Value)
}

func TestEnvelopeExtensionRoundTrip(t *testing.T) {
	e := Envelope{ID: "msg-1", Payload: pbspec.OneofValue{Tag: 2, Name: "text_payload", Value: "hi"}}
	e.SetDebugNote("from the edge")

	data := MarshalEnvelope(e, pbwire.Balanced)
	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)

	note, ok, err := got.DebugNote()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "from the edge", note)
}

func TestEnvelopeUnknownFieldOutsideExtensionRangeIsSkipped(t *testing.T) {
	w := pbwire.NewWriter(pbwire.Balanced)
	w.WriteTag(1, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("msg-1"))
	w.WriteTag(2, pbwire.KindLengthDelimited)
	w.WriteLengthDelimited([]byte("hi"))
	w.WriteTag(50, pbwire.KindVarint) // not in [100,200), not a declared field
	w.WriteVarint(7)

	got, err := UnmarshalEnvelope(w.Contents())
	require.NoError(t, err)
	require.Equal(t, 0, got.Extensions.Len())
}

func TestEnvelopeJSONRoundTrip(t *testing.T) {
	e := Envelope{ID: "msg-1", Payload: pbspec.OneofValue{Tag: 3, Name: "binary_payload", Value: []byte("bin")}}
	data, err := pbjson.Marshal(e, EnvelopeJSONEncodeShape(), pbjson.DefaultOptions())
	require.NoError(t, err)
	got, err := pbjson.Unmarshal(data, EnvelopeJSONDecodeShape(), pbjson.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)
	require.Equal(t, e.Payload, got.Payload)
}
