package keva

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when a record key is empty or not ASCII.
	ErrInvalidKey = errors.New("key must be a non-empty ascii string")

	// ErrNoKey is returned by operations that require a key on a record
	// whose key has not been assigned yet.
	ErrNoKey = errors.New("record has no key")

	// ErrAmbiguousIndexRemoval is returned when an index value is given
	// without a field during removal.
	ErrAmbiguousIndexRemoval = errors.New("cannot remove an index by value without a field")

	// ErrIndexNotFound is returned when removing an exact index pair that
	// is not present.
	ErrIndexNotFound = errors.New("index entry not found")

	// ErrUnresolvedConflict is returned when storing a record that is an
	// unresolved conflict parent. Store one of its siblings instead.
	ErrUnresolvedConflict = errors.New("record is an unresolved conflict, store a sibling instead")
)

// ErrInvalidIndexSuffix indicates a secondary-index field without the
// required "_bin" or "_int" suffix.
type ErrInvalidIndexSuffix struct {
	Field string
}

func (e *ErrInvalidIndexSuffix) Error() string {
	return fmt.Sprintf("index field %q must end with _bin or _int", e.Field)
}

// ErrMissingCodec indicates that no encoder or decoder is registered for a
// record's content type.
type ErrMissingCodec struct {
	ContentType string
	Decode      bool
}

func (e *ErrMissingCodec) Error() string {
	if e.Decode {
		return fmt.Sprintf("no decoder for content type %q", e.ContentType)
	}
	return fmt.Sprintf("no encoder for non-textual data with content type %q", e.ContentType)
}

// ErrUnrecognizedResult indicates a transport result shape the record does
// not know how to apply for the given operation.
type ErrUnrecognizedResult struct {
	Op   string
	Kind ResultKind
}

func (e *ErrUnrecognizedResult) Error() string {
	return fmt.Sprintf("unrecognized %s result: %s", e.Op, e.Kind)
}
