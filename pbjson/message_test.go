package pbjson

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/mistsys/protospec/pbspec"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func pointDecodeShape() Shape[point] {
	return Shape[point]{
		Fields: []DecodeField{
			Basic("x", "x", Int32Scalar(), pbspec.Proto3[int32]()),
			Basic("y", "y", Int32Scalar(), pbspec.Proto3[int32]()),
		},
		Build: func(vals []any) (point, error) { return point{X: vals[0].(int32), Y: vals[1].(int32)}, nil },
	}
}

func pointEncodeShape() MarshalShape[point] {
	return MarshalShape[point]{
		Fields: []EncodeField[point]{
			BasicEncode("x", "x", Int32Scalar(), pbspec.Proto3[int32](), func(p point) int32 { return p.X }),
			BasicEncode("y", "y", Int32Scalar(), pbspec.Proto3[int32](), func(p point) int32 { return p.Y }),
		},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	p := point{X: 3, Y: -4}
	data, err := Marshal(p, pointEncodeShape(), DefaultOptions())
	require.NoError(t, err)
	require.JSONEq(t, `{"x":3,"y":-4}`, string(data))

	got, err := Unmarshal(data, pointDecodeShape(), DefaultOptions())
	require.NoError(t, err)
	if diff := pretty.Compare(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalAcceptsProtoNameWhenJSONNamesOff(t *testing.T) {
	got, err := Unmarshal([]byte(`{"x":1,"y":2}`), pointDecodeShape(), Options{JSONNames: false, OmitDefaultValues: true})
	require.NoError(t, err)
	require.Equal(t, point{X: 1, Y: 2}, got)
}

func TestMarshalOmitsProto3Zero(t *testing.T) {
	data, err := Marshal(point{X: 0, Y: 5}, pointEncodeShape(), DefaultOptions())
	require.NoError(t, err)
	require.JSONEq(t, `{"y":5}`, string(data))
}
