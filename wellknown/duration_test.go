package wellknown

import (
	"testing"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestDurationJSONSeedScenarios(t *testing.T) {
	cases := []struct {
		d    Duration
		want string
	}{
		{Duration{Seconds: 1000, Nanos: 123456}, "1000.000123456s"},
		{Duration{Seconds: -1, Nanos: 0}, "-1s"},
		{Duration{Seconds: 0, Nanos: 0}, "0s"},
		{Duration{Seconds: 3, Nanos: 1000000}, "3.001s"},
		{Duration{Seconds: 3, Nanos: 1000}, "3.000001s"},
	}
	hooks := DurationJSON()
	for _, c := range cases {
		got, err := hooks.Wrap(c.d)
		require.NoError(t, err)
		require.Equal(t, c.want, got)

		back, err := hooks.Unwrap(got)
		require.NoError(t, err)
		require.Equal(t, c.d, back)
	}
}

func TestDurationBinaryRoundTrip(t *testing.T) {
	d := Duration{Seconds: -12, Nanos: -500000000}
	data := pbcodec.Marshal(d, DurationEncodeShape(), pbwire.Balanced)
	got, _, err := pbcodec.Unmarshal(data, DurationDecodeShape())
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestDurationMalformedJSON(t *testing.T) {
	_, err := DurationJSON().Unwrap("not a duration")
	require.Error(t, err)
}

func TestDurationAsMessageField(t *testing.T) {
	type Wrap struct{ D Duration }
	shape := pbjson.MarshalShape[Wrap]{
		Fields: []pbjson.EncodeField[Wrap]{
			pbjson.MessageEncode("d", "d", pbjson.MarshalShape[Duration]{WellKnown: DurationJSON()}, func(w Wrap) *Duration { return &w.D }),
		},
	}
	out, err := pbjson.Marshal(Wrap{D: Duration{Seconds: 1000, Nanos: 123456}}, shape, pbjson.DefaultOptions())
	require.NoError(t, err)
	require.JSONEq(t, `{"d":"1000.000123456s"}`, string(out))
}
