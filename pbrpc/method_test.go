package pbrpc

import (
	"context"
	"errors"
	"testing"

	"github.com/mistsys/protospec/example"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func lookupMethod() Method[example.Address, example.Address] {
	return Method[example.Address, example.Address]{
		FullName:  "example.AddressBook/Lookup",
		Marshal:   func(a example.Address) []byte { return example.MarshalAddress(a, pbwire.Balanced) },
		Unmarshal: func(b []byte) (example.Address, error) { return example.UnmarshalAddress(b) },
	}
}

func TestCallRoundTripsThroughInvoker(t *testing.T) {
	want := example.Address{Street: "Main", Number: 42, Planet: example.PlanetMars}

	var gotMethod string
	var gotBytes []byte
	invoke := func(ctx context.Context, method string, reqBytes []byte) ([]byte, error) {
		gotMethod = method
		gotBytes = reqBytes
		return reqBytes, nil
	}

	got, err := lookupMethod().Call(context.Background(), invoke, want)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "example.AddressBook/Lookup", gotMethod)
	require.Equal(t, example.MarshalAddress(want, pbwire.Balanced), gotBytes)
}

func TestCallPropagatesInvokerError(t *testing.T) {
	wantErr := errors.New("transport down")
	invoke := func(ctx context.Context, method string, reqBytes []byte) ([]byte, error) {
		return nil, wantErr
	}

	_, err := lookupMethod().Call(context.Background(), invoke, example.Address{})
	require.ErrorIs(t, err, wantErr)
}
