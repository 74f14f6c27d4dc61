package keva

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// DefaultContentType is assigned to newly constructed records.
const DefaultContentType = "application/json"

// Record is a single versioned entry in an eventually-consistent key-value
// store: its value, the metadata describing the encoded form, secondary-index
// tags, outbound links and any unresolved write conflicts.
//
// A Record is not safe for concurrent mutation; callers owning a record must
// serialize access to it. That includes resolving the same sibling index from
// two goroutines, since resolution mutates a list shared by every sibling
// holder.
type Record struct {
	bucket *Bucket
	key    string
	hasKey bool

	// VClock is the opaque causality token for this version. It is nil
	// until the record has been stored or fetched at least once.
	VClock []byte

	// ContentType selects the codec used to convert between the decoded
	// value and the encoded wire bytes.
	ContentType string

	// Charset and ContentEncoding describe the encoded representation.
	// Both are passed through to the transport uninterpreted.
	Charset         string
	ContentEncoding string

	// UserMeta holds caller-defined metadata, opaque to this layer.
	UserMeta map[string]string

	indexes  map[IndexEntry]struct{}
	links    []Link
	siblings *siblingSet
	exists   bool

	cell valueCell
}

func newRecord(bucket *Bucket, key string, hasKey bool) *Record {
	return &Record{
		bucket:      bucket,
		key:         key,
		hasKey:      hasKey,
		ContentType: DefaultContentType,
		UserMeta:    make(map[string]string),
		indexes:     make(map[IndexEntry]struct{}),
	}
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] > 0x7f {
			return false
		}
	}
	return true
}

// Key returns the record's key. ok is false for records whose key will be
// assigned by the server on first store.
func (r *Record) Key() (key string, ok bool) {
	return r.key, r.hasKey
}

// Bucket returns the owning bucket.
func (r *Record) Bucket() *Bucket {
	return r.bucket
}

// Exists reports whether the record is known to exist server-side.
func (r *Record) Exists() bool {
	return r.exists
}

// Data returns the decoded value. If the record currently holds only the
// encoded bytes, they are decoded through the bucket's registry for the
// record's content type and then discarded. Returns nil for an empty record.
func (r *Record) Data() (any, error) {
	if r.cell.state == cellEncoded {
		v, err := r.decode(r.cell.encoded)
		if err != nil {
			return nil, err
		}
		r.cell.setDecoded(v)
	}
	return r.cell.decoded, nil
}

// SetData replaces the decoded value and immediately invalidates any cached
// encoded bytes. Re-encoding happens lazily on the next EncodedData call.
func (r *Record) SetData(v any) {
	r.cell.setDecoded(v)
}

// EncodedData returns the encoded wire bytes. If the record currently holds
// only the decoded value, it is encoded through the bucket's registry for the
// record's content type and then discarded. Returns nil for an empty record.
func (r *Record) EncodedData() ([]byte, error) {
	if r.cell.state == cellDecoded {
		b, err := r.encode(r.cell.decoded)
		if err != nil {
			return nil, err
		}
		r.cell.setEncoded(b)
	}
	return r.cell.encoded, nil
}

// SetEncodedData replaces the encoded bytes and immediately invalidates any
// cached decoded value.
func (r *Record) SetEncodedData(b []byte) {
	r.cell.setEncoded(b)
}

func (r *Record) encode(v any) ([]byte, error) {
	if enc, ok := r.bucket.Encoder(r.ContentType); ok {
		return enc(v)
	}
	switch s := v.(type) {
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	}
	return nil, &ErrMissingCodec{ContentType: r.ContentType}
}

// decode has no textual fallback: arbitrary bytes cannot be safely guessed
// into a type, so an unregistered content type is an error.
func (r *Record) decode(b []byte) (any, error) {
	dec, ok := r.bucket.Decoder(r.ContentType)
	if !ok {
		return nil, &ErrMissingCodec{ContentType: r.ContentType, Decode: true}
	}
	return dec(b)
}

// Equal reports whether two records denote the same version: same key, same
// bucket name, same causality token.
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return false
	}
	if r.hasKey != other.hasKey || r.key != other.key {
		return false
	}
	if r.bucket.Name() != other.bucket.Name() {
		return false
	}
	return bytes.Equal(r.VClock, other.VClock)
}

// Hash returns a hash over the identity triple (key, bucket, vclock).
// Records for which Equal is true hash equal.
func (r *Record) Hash() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(r.bucket.Name())
	_, _ = h.Write([]byte{0})
	if r.hasKey {
		_, _ = h.WriteString(r.key)
	}
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(r.VClock)
	return h.Sum64()
}
