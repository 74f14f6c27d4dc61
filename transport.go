package keva

import "context"

// ResultKind discriminates the outcomes a Transport can report.
type ResultKind uint8

const (
	// ResultPopulated carries a full snapshot of a single record version.
	ResultPopulated ResultKind = iota
	// ResultNoChange signals that the operation succeeded but returned no
	// body, so there is nothing to apply locally.
	ResultNoChange
	// ResultNotFound signals that the key does not exist server-side.
	ResultNotFound
	// ResultConflict carries the version tags of causally-concurrent
	// versions the store could not reconcile.
	ResultConflict
)

// String returns a human-readable name for the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultPopulated:
		return "populated"
	case ResultNoChange:
		return "no-change"
	case ResultNotFound:
		return "not-found"
	case ResultConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// IndexEntry is a single secondary-index tag attached to a record.
// The Field suffix ("_bin" or "_int") declares the comparison type.
type IndexEntry struct {
	Field string
	Value string
}

// Link is an outbound reference from one record to another.
type Link struct {
	Bucket string
	Key    string
	Tag    string
}

// Snapshot is a plain data carrier for a single record version, produced by
// transports and applied to records wholesale. It holds no live references.
type Snapshot struct {
	Key             string
	VClock          []byte
	ContentType     string
	Charset         string
	ContentEncoding string
	UserMeta        map[string]string
	Indexes         []IndexEntry
	Links           []Link
	EncodedData     []byte
}

// Result is the outcome of a transport operation.
//
// Exactly one of the payload fields is meaningful, selected by Kind:
// Snapshot for ResultPopulated, VTags and VClock for ResultConflict.
type Result struct {
	Kind     ResultKind
	Snapshot *Snapshot
	VTags    []string
	VClock   []byte
}

// Transport is the wire collaborator that moves records to and from the
// store. Implementations own all network concerns: connection pooling,
// retries, timeouts and quorum interpretation. Quorum knobs in the option
// structs are passed through uninterpreted by the record layer.
//
// Implementations must be safe for concurrent use.
type Transport interface {
	// Put performs a conditional update of a keyed record.
	// It returns a populated result, a no-change result when no body was
	// requested, or an error.
	Put(ctx context.Context, rec *Record, opts StoreOptions) (*Result, error)

	// PutNew stores a keyless record, letting the server assign its key.
	// The returned snapshot must carry the assigned key.
	PutNew(ctx context.Context, rec *Record, opts StoreOptions) (*Result, error)

	// Get fetches the current server state of a keyed record. It returns
	// a populated result, a not-found result, or a conflict result
	// listing sibling version tags.
	Get(ctx context.Context, rec *Record, opts FetchOptions) (*Result, error)

	// Delete removes the record's key. Implementations report transport
	// failures via the error; there is no result to inspect.
	Delete(ctx context.Context, rec *Record, opts DeleteOptions) error
}
