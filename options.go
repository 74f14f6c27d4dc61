package keva

// Quorum is a replica-count tuning knob (W, DW, PW, R, PR, RW) carried
// through to the transport uninterpreted. Zero means "transport default".
type Quorum int

// StoreOptions tune a single Store operation.
type StoreOptions struct {
	W  Quorum
	DW Quorum
	PW Quorum

	// ReturnBody requests the stored version back from the server so the
	// local record reflects post-write state. Defaults to true.
	ReturnBody bool

	// IfNoneMatch asks the server to store only if the key does not
	// already exist.
	IfNoneMatch bool
}

// StoreOption configures a Store operation.
type StoreOption func(*StoreOptions)

func defaultStoreOptions() StoreOptions {
	return StoreOptions{ReturnBody: true}
}

// WithW sets the write quorum.
func WithW(q Quorum) StoreOption {
	return func(o *StoreOptions) { o.W = q }
}

// WithDW sets the durable-write quorum.
func WithDW(q Quorum) StoreOption {
	return func(o *StoreOptions) { o.DW = q }
}

// WithPW sets the primary-write quorum.
func WithPW(q Quorum) StoreOption {
	return func(o *StoreOptions) { o.PW = q }
}

// WithReturnBody controls whether the server echoes the stored version.
func WithReturnBody(returnBody bool) StoreOption {
	return func(o *StoreOptions) { o.ReturnBody = returnBody }
}

// WithIfNoneMatch stores only if the key does not already exist.
func WithIfNoneMatch(ifNoneMatch bool) StoreOption {
	return func(o *StoreOptions) { o.IfNoneMatch = ifNoneMatch }
}

// FetchOptions tune a single Reload or sibling fetch.
type FetchOptions struct {
	R  Quorum
	PR Quorum

	// VTag selects one specific sibling version instead of the head.
	VTag string
}

// FetchOption configures a Reload operation.
type FetchOption func(*FetchOptions)

// WithR sets the read quorum.
func WithR(q Quorum) FetchOption {
	return func(o *FetchOptions) { o.R = q }
}

// WithPR sets the primary-read quorum.
func WithPR(q Quorum) FetchOption {
	return func(o *FetchOptions) { o.PR = q }
}

// WithVTag fetches the sibling version identified by vtag.
func WithVTag(vtag string) FetchOption {
	return func(o *FetchOptions) { o.VTag = vtag }
}

// DeleteOptions tune a single Delete operation.
type DeleteOptions struct {
	RW Quorum
	R  Quorum
	W  Quorum
	DW Quorum
	PR Quorum
	PW Quorum
}

// DeleteOption configures a Delete operation.
type DeleteOption func(*DeleteOptions)

// WithDeleteRW sets the legacy read-write quorum.
func WithDeleteRW(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.RW = q }
}

// WithDeleteR sets the read quorum for the read that precedes the delete.
func WithDeleteR(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.R = q }
}

// WithDeleteW sets the write quorum.
func WithDeleteW(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.W = q }
}

// WithDeleteDW sets the durable-write quorum.
func WithDeleteDW(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.DW = q }
}

// WithDeletePR sets the primary-read quorum.
func WithDeletePR(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.PR = q }
}

// WithDeletePW sets the primary-write quorum.
func WithDeletePW(q Quorum) DeleteOption {
	return func(o *DeleteOptions) { o.PW = q }
}
