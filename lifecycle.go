package keva

import (
	"context"
	"time"
)

// Store persists the record. A keyless record is created with a
// server-assigned key, which the record adopts from the result; a keyed
// record is conditionally updated, passing the quorum knobs through to the
// transport.
//
// Storing a record that is an unresolved conflict parent (non-empty sibling
// set, no data, no encoded data, no vclock) fails with ErrUnresolvedConflict:
// resolve and store one of the siblings, or set merged data first.
func (r *Record) Store(ctx context.Context, opts ...StoreOption) error {
	if r.Conflict() && r.cell.empty() && r.VClock == nil {
		return ErrUnresolvedConflict
	}

	so := defaultStoreOptions()
	for _, opt := range opts {
		opt(&so)
	}

	c := r.bucket.client

	var (
		res *Result
		err error
	)
	start := time.Now()
	if r.hasKey {
		res, err = c.transport.Put(ctx, r, so)
	} else {
		res, err = c.transport.PutNew(ctx, r, so)
	}
	c.metrics.RecordStore(time.Since(start), err)
	c.logger.LogStore(ctx, r.bucket.name, r.key, err)
	if err != nil {
		return err
	}
	if res == nil {
		return &ErrUnrecognizedResult{Op: "store"}
	}

	switch res.Kind {
	case ResultPopulated:
		r.applySnapshot(res.Snapshot)
	case ResultNoChange:
		// Nothing came back to apply.
	default:
		return &ErrUnrecognizedResult{Op: "store", Kind: res.Kind}
	}
	return nil
}

// Reload replaces the record's state with the current server state for its
// key. A not-found result transitions the record to the cleared state rather
// than failing. A conflict result installs the sibling version tags for lazy
// resolution via Sibling.
func (r *Record) Reload(ctx context.Context, opts ...FetchOption) error {
	if !r.hasKey {
		return ErrNoKey
	}

	var fo FetchOptions
	for _, opt := range opts {
		opt(&fo)
	}

	c := r.bucket.client

	start := time.Now()
	res, err := c.transport.Get(ctx, r, fo)
	c.metrics.RecordFetch(time.Since(start), err)
	c.logger.LogFetch(ctx, r.bucket.name, r.key, res != nil && res.Kind == ResultConflict, err)
	if err != nil {
		return err
	}
	if res == nil {
		return &ErrUnrecognizedResult{Op: "fetch"}
	}

	switch res.Kind {
	case ResultPopulated:
		r.applySnapshot(res.Snapshot)
	case ResultNotFound:
		r.Clear()
	case ResultConflict:
		r.Clear()
		r.VClock = append([]byte(nil), res.VClock...)
		r.siblings = newSiblingSet(res.VTags)
		r.exists = true
		c.metrics.RecordConflict(len(res.VTags))
	default:
		return &ErrUnrecognizedResult{Op: "fetch", Kind: res.Kind}
	}
	return nil
}

// Delete removes the record's key from the store. The record transitions to
// the cleared state regardless of the transport outcome; deletion is best
// effort from this layer's perspective, and the transport error, if any, is
// returned after clearing.
func (r *Record) Delete(ctx context.Context, opts ...DeleteOption) error {
	if !r.hasKey {
		return ErrNoKey
	}

	var do DeleteOptions
	for _, opt := range opts {
		opt(&do)
	}

	c := r.bucket.client

	start := time.Now()
	err := c.transport.Delete(ctx, r, do)
	c.metrics.RecordDelete(time.Since(start), err)
	c.logger.LogDelete(ctx, r.bucket.name, r.key, err)

	r.Clear()
	return err
}

// Clear resets the record's value, links and siblings and marks it as not
// existing. Identity (key, bucket), the causality token, secondary indexes
// and user metadata are preserved.
func (r *Record) Clear() {
	r.cell.reset()
	r.links = nil
	r.siblings = nil
	r.exists = false
}

// applySnapshot is the sole mutation path accepting transport results. It
// wholesale-replaces the record's field set from the snapshot; callers must
// not rely on partial carryover. Identity fields are preserved, except that
// a keyless record adopts the server-assigned key.
func (r *Record) applySnapshot(s *Snapshot) {
	if s == nil {
		return
	}

	if !r.hasKey && s.Key != "" {
		r.key = s.Key
		r.hasKey = true
	}

	r.VClock = append([]byte(nil), s.VClock...)
	r.ContentType = s.ContentType
	r.Charset = s.Charset
	r.ContentEncoding = s.ContentEncoding

	r.UserMeta = make(map[string]string, len(s.UserMeta))
	for k, v := range s.UserMeta {
		r.UserMeta[k] = v
	}

	r.indexes = make(map[IndexEntry]struct{}, len(s.Indexes))
	for _, entry := range s.Indexes {
		r.indexes[entry] = struct{}{}
	}

	r.links = make([]Link, len(s.Links))
	copy(r.links, s.Links)

	if s.EncodedData != nil {
		r.cell.setEncoded(append([]byte(nil), s.EncodedData...))
	} else {
		r.cell.reset()
	}

	r.siblings = nil
	r.exists = true
}
