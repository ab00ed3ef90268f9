package wellknown

import (
	"testing"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestValueJSONScalarKinds(t *testing.T) {
	cases := []struct {
		v    Value
		want any
	}{
		{Value{Kind: NullValueNull}, nil},
		{Value{Kind: "hi"}, "hi"},
		{Value{Kind: true}, true},
		{Value{Kind: float64(3.5)}, pbjson.Num("3.5")},
	}
	for _, c := range cases {
		got, err := ValueJSON().Wrap(c.v)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestStructJSONRoundTrip(t *testing.T) {
	s := Struct{Fields: []pbspec.MapEntry[string, Value]{
		{Key: "name", Value: Value{Kind: "ada"}},
		{Key: "age", Value: Value{Kind: float64(36)}},
	}}
	got, err := StructJSON().Wrap(s)
	require.NoError(t, err)
	data, err := pbjson.MarshalValue(got)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"ada","age":36}`, string(data))

	parsed, err := pbjson.ParseValue(data)
	require.NoError(t, err)
	back, err := StructJSON().Unwrap(parsed)
	require.NoError(t, err)
	require.ElementsMatch(t, s.Fields, back.Fields)
}

func TestListValueJSONRoundTrip(t *testing.T) {
	l := ListValue{Values: []Value{{Kind: "a"}, {Kind: float64(1)}, {Kind: true}, {Kind: NullValueNull}}}
	got, err := ListValueJSON().Wrap(l)
	require.NoError(t, err)
	data, err := pbjson.MarshalValue(got)
	require.NoError(t, err)
	require.JSONEq(t, `["a",1,true,null]`, string(data))

	parsed, err := pbjson.ParseValue(data)
	require.NoError(t, err)
	back, err := ListValueJSON().Unwrap(parsed)
	require.NoError(t, err)
	require.Equal(t, l, back)
}

func TestValueBinaryRoundTrip(t *testing.T) {
	v := Value{Kind: &ListValue{Values: []Value{{Kind: "x"}, {Kind: float64(2)}}}}
	data := pbcodec.Marshal(v, ValueEncodeShape(), pbwire.Balanced)
	got, _, err := pbcodec.Unmarshal(data, ValueDecodeShape())
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestValueBinaryZeroIsUnset(t *testing.T) {
	data := pbcodec.Marshal(Value{}, ValueEncodeShape(), pbwire.Balanced)
	require.Empty(t, data)
}
