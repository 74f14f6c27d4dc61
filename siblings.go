package keva

import (
	"context"
	"fmt"
)

// siblingSet is the single shared arena of concurrent versions produced by a
// conflicted fetch. Every record involved in the conflict (the parent and
// each resolved sibling) holds a pointer to the same set, so resolving one
// entry is visible through every holder.
type siblingSet struct {
	entries []siblingEntry
}

// siblingEntry starts as an unresolved version tag and gains a record on
// first access.
type siblingEntry struct {
	vtag string
	rec  *Record
}

func newSiblingSet(vtags []string) *siblingSet {
	entries := make([]siblingEntry, len(vtags))
	for i, vtag := range vtags {
		entries[i].vtag = vtag
	}
	return &siblingSet{entries: entries}
}

// Conflict reports whether the store returned causally-concurrent versions
// for this record's key that have not been reconciled.
func (r *Record) Conflict() bool {
	return r.siblings != nil && len(r.siblings.entries) > 0
}

// SiblingCount returns the number of concurrent versions in the conflict
// set, zero when there is no conflict.
func (r *Record) SiblingCount() int {
	if r.siblings == nil {
		return 0
	}
	return len(r.siblings.entries)
}

// SiblingVTags returns the version tags of the conflict set in store order.
func (r *Record) SiblingVTags() []string {
	if r.siblings == nil {
		return nil
	}
	vtags := make([]string, len(r.siblings.entries))
	for i, e := range r.siblings.entries {
		vtags[i] = e.vtag
	}
	return vtags
}

// Sibling returns the i-th concurrent version, fetching it from the
// transport on first access. Resolution is lazy and per-entry: no other
// sibling is fetched. The resolved record is cached in the shared set, so a
// second call returns the same instance and the resolution is visible from
// every other holder of the set.
func (r *Record) Sibling(ctx context.Context, i int, opts ...FetchOption) (*Record, error) {
	if r.siblings == nil || i < 0 || i >= len(r.siblings.entries) {
		return nil, fmt.Errorf("sibling index %d out of range [0, %d)", i, r.SiblingCount())
	}

	entry := &r.siblings.entries[i]
	if entry.rec != nil {
		return entry.rec, nil
	}

	fetchOpts := make([]FetchOption, 0, len(opts)+1)
	fetchOpts = append(fetchOpts, opts...)
	fetchOpts = append(fetchOpts, WithVTag(entry.vtag))

	sib := newRecord(r.bucket, r.key, r.hasKey)
	if err := sib.Reload(ctx, fetchOpts...); err != nil {
		return nil, err
	}

	entry.rec = sib
	sib.siblings = r.siblings
	return sib, nil
}
