// Package wire is the gRPC codec for the control socket. Message bodies are
// plain Go structs encoded as JSON, so the service needs no generated code.
//
// Clients select it per call with grpc.CallContentSubtype(wire.Name); the
// server finds it in the codec registry by the same name.
package wire

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the codec name and gRPC content subtype ("application/grpc+json").
const Name = "json"

// Codec marshals gRPC messages as JSON.
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Name implements encoding.Codec.
func (Codec) Name() string { return Name }

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire encode %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire decode %T: %w", v, err)
	}
	return nil
}
