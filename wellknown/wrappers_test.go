package wellknown

import (
	"testing"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestStringValueJSONIsBareScalar(t *testing.T) {
	hooks := StringValueJSON()
	got, err := hooks.Wrap(StringValue{Value: "hi"})
	require.NoError(t, err)
	require.Equal(t, "hi", got)

	back, err := hooks.Unwrap("hi")
	require.NoError(t, err)
	require.Equal(t, StringValue{Value: "hi"}, back)
}

func TestInt32ValueBinaryRoundTrip(t *testing.T) {
	v := Int32Value{Value: -7}
	data := pbcodec.Marshal(v, WrapperEncodeShape(pbspec.Int32()), pbwire.Balanced)
	got, _, err := pbcodec.Unmarshal(data, WrapperDecodeShape(pbspec.Int32()))
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestBoolValueJSON(t *testing.T) {
	got, err := BoolValueJSON().Wrap(BoolValue{Value: true})
	require.NoError(t, err)
	require.Equal(t, true, got)
}
