package wellknown

import (
	"testing"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestTimestampJSONSeedScenario(t *testing.T) {
	ts := Timestamp{Seconds: 1709931283, Nanos: 500000001}
	hooks := TimestampJSON()
	got, err := hooks.Wrap(ts)
	require.NoError(t, err)
	require.Equal(t, "2024-03-08T20:54:43.500000001Z", got)

	back, err := hooks.Unwrap(got)
	require.NoError(t, err)
	require.Equal(t, ts, back)
}

func TestTimestampJSONNoFraction(t *testing.T) {
	ts := Timestamp{Seconds: 1709931283, Nanos: 0}
	got, err := TimestampJSON().Wrap(ts)
	require.NoError(t, err)
	require.Equal(t, "2024-03-08T20:54:43Z", got)
}

func TestTimestampAcceptsOffsetOnDecode(t *testing.T) {
	got, err := TimestampJSON().Unwrap("2024-03-08T20:54:43+00:00")
	require.NoError(t, err)
	require.Equal(t, Timestamp{Seconds: 1709931283, Nanos: 0}, got)
}

func TestTimestampBinaryRoundTrip(t *testing.T) {
	ts := Timestamp{Seconds: 1709931283, Nanos: 500000001}
	data := pbcodec.Marshal(ts, TimestampEncodeShape(), pbwire.Balanced)
	got, _, err := pbcodec.Unmarshal(data, TimestampDecodeShape())
	require.NoError(t, err)
	require.Equal(t, ts, got)
}
