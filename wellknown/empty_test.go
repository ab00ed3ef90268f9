package wellknown

import (
	"testing"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestEmptyJSONIsAlwaysEmptyObject(t *testing.T) {
	got, err := EmptyJSON().Wrap(Empty{})
	require.NoError(t, err)
	obj, ok := got.(pbjson.Obj)
	require.True(t, ok)
	require.Empty(t, obj)

	data, err := pbjson.MarshalValue(got)
	require.NoError(t, err)
	require.JSONEq(t, "{}", string(data))
}

func TestEmptyBinaryIsZeroBytes(t *testing.T) {
	data := pbcodec.Marshal(Empty{}, EmptyEncodeShape(), pbwire.Balanced)
	require.Empty(t, data)

	got, _, err := pbcodec.Unmarshal(data, EmptyDecodeShape())
	require.NoError(t, err)
	require.Equal(t, Empty{}, got)
}
