// Package pbrpc implements spec.md §4.9's service stubs: a pure
// name-and-types pairing between a request and response message, plus the
// fully-qualified RPC method name a generator would emit for one `rpc`
// declaration. There is no transport here — the core provides none, by
// Non-goal — the caller supplies the byte-in/byte-out function that actually
// talks to a peer.
package pbrpc

import "context"

// Invoker is the transport a caller supplies: given a fully-qualified method
// name and a request's serialized bytes, it returns the response's
// serialized bytes (or an error, including for transport-level failures).
type Invoker func(ctx context.Context, method string, reqBytes []byte) (respBytes []byte, err error)

// Method pairs one RPC's fully-qualified name with its request/response
// message types' to_proto/from_proto serializers, mirroring what the
// generator would emit for each `rpc` declaration in a `service` block.
type Method[Req any, Resp any] struct {
	// FullName is the fully-qualified method name, e.g.
	// "example.AddressBook/Lookup", as a generator would render it from the
	// enclosing package and service/method names.
	FullName string
	Marshal   func(Req) []byte
	Unmarshal func([]byte) (Resp, error)
}

// Call serializes req, invokes it through invoke, and deserializes the
// response. It is the only thing this package does: the generated surface
// (name(), the request/response modules) already exists by the time Method
// is built, exactly as spec.md §4.9 describes.
func (m Method[Req, Resp]) Call(ctx context.Context, invoke Invoker, req Req) (Resp, error) {
	var zero Resp
	reqBytes := m.Marshal(req)
	respBytes, err := invoke(ctx, m.FullName, reqBytes)
	if err != nil {
		return zero, err
	}
	return m.Unmarshal(respBytes)
}
