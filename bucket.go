package keva

import (
	"github.com/hupe1980/keva/codec"
)

// Bucket is a named collection of records sharing a codec registry. It holds
// no server-side state of its own at this layer.
//
// New buckets are seeded with the default JSON codec for "application/json"
// and "text/json".
type Bucket struct {
	client *Client
	name   string
	codecs *codec.Registry
}

// BucketOption configures a Bucket.
type BucketOption func(*Bucket)

// WithCodec registers c for contentType in the bucket's registry.
func WithCodec(contentType string, c codec.Codec) BucketOption {
	return func(b *Bucket) {
		b.codecs.Register(contentType, c)
	}
}

// Bucket returns a handle to the named collection. Handles created for the
// same name are independent; codec registrations do not carry across them.
func (c *Client) Bucket(name string, opts ...BucketOption) *Bucket {
	b := &Bucket{
		client: c,
		name:   name,
		codecs: codec.NewRegistry(),
	}
	b.codecs.Register("application/json", codec.Default)
	b.codecs.Register("text/json", codec.Default)

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// SetEncoder registers an encoder for contentType.
func (b *Bucket) SetEncoder(contentType string, fn codec.EncoderFunc) {
	b.codecs.SetEncoder(contentType, fn)
}

// SetDecoder registers a decoder for contentType.
func (b *Bucket) SetDecoder(contentType string, fn codec.DecoderFunc) {
	b.codecs.SetDecoder(contentType, fn)
}

// Encoder returns the encoder registered for contentType.
func (b *Bucket) Encoder(contentType string) (codec.EncoderFunc, bool) {
	return b.codecs.Encoder(contentType)
}

// Decoder returns the decoder registered for contentType.
func (b *Bucket) Decoder(contentType string) (codec.DecoderFunc, bool) {
	return b.codecs.Decoder(contentType)
}

// NewRecord creates an empty record under the given key. The key must be a
// non-empty ASCII string and is immutable afterwards.
func (b *Bucket) NewRecord(key string) (*Record, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	return newRecord(b, key, true), nil
}

// NewRecordWithoutKey creates an empty record whose key the server assigns
// on first store.
func (b *Bucket) NewRecordWithoutKey() *Record {
	return newRecord(b, "", false)
}
