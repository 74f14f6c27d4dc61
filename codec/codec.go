// Package codec centralizes payload encoding for keva records.
//
// A record's content type selects the codec that converts between application
// values and wire bytes. Codecs are registered per bucket through a Registry;
// the store itself never interprets the bytes.
package codec

import (
	"fmt"
	"sync"
)

// EncoderFunc serializes an application value into wire bytes.
type EncoderFunc func(v any) ([]byte, error)

// DecoderFunc deserializes wire bytes into an application value.
type DecoderFunc func(data []byte) (any, error)

// Codec pairs an encoder and decoder under a stable name.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "text":
		return Text{}, true
	default:
		return nil, false
	}
}

// MustEncode is a helper for internal tests/benchmarks.
func MustEncode(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Encode(v)
	if err != nil {
		panic(fmt.Errorf("codec %s encode failed: %w", c.Name(), err))
	}
	return b
}

// Registry maps content types to encoder/decoder functions.
// The zero value is not usable; construct with NewRegistry.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]EncoderFunc
	decoders map[string]DecoderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]EncoderFunc),
		decoders: make(map[string]DecoderFunc),
	}
}

// SetEncoder registers fn as the encoder for contentType, replacing any
// previous registration. A nil fn removes the registration.
func (r *Registry) SetEncoder(contentType string, fn EncoderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		delete(r.encoders, contentType)
		return
	}
	r.encoders[contentType] = fn
}

// SetDecoder registers fn as the decoder for contentType, replacing any
// previous registration. A nil fn removes the registration.
func (r *Registry) SetDecoder(contentType string, fn DecoderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		delete(r.decoders, contentType)
		return
	}
	r.decoders[contentType] = fn
}

// Register wires both sides of c under contentType.
func (r *Registry) Register(contentType string, c Codec) {
	r.SetEncoder(contentType, c.Encode)
	r.SetDecoder(contentType, c.Decode)
}

// Encoder returns the encoder registered for contentType.
func (r *Registry) Encoder(contentType string) (EncoderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.encoders[contentType]
	return fn, ok
}

// Decoder returns the decoder registered for contentType.
func (r *Registry) Decoder(contentType string) (DecoderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.decoders[contentType]
	return fn, ok
}
