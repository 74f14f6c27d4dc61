package keva

import (
	"sort"
	"strconv"
	"strings"
)

// AddIndex tags the record with a secondary-index pair. The field must end
// with "_bin" or "_int". Adding an existing pair is a no-op.
func (r *Record) AddIndex(field, value string) error {
	if !strings.HasSuffix(field, "_bin") && !strings.HasSuffix(field, "_int") {
		return &ErrInvalidIndexSuffix{Field: field}
	}
	r.indexes[IndexEntry{Field: field, Value: value}] = struct{}{}
	return nil
}

// AddIntIndex tags the record with an integer secondary-index pair. The
// field must end with "_int".
func (r *Record) AddIntIndex(field string, value int) error {
	if !strings.HasSuffix(field, "_int") {
		return &ErrInvalidIndexSuffix{Field: field}
	}
	r.indexes[IndexEntry{Field: field, Value: strconv.Itoa(value)}] = struct{}{}
	return nil
}

// RemoveIndexes removes secondary-index pairs. Empty strings mean "absent":
//
//   - both empty: remove every index
//   - field only: remove every pair with that field
//   - both given: remove the exact pair; ErrIndexNotFound if absent
//   - value only: ErrAmbiguousIndexRemoval
func (r *Record) RemoveIndexes(field, value string) error {
	switch {
	case field == "" && value == "":
		clear(r.indexes)
	case field != "" && value == "":
		for entry := range r.indexes {
			if entry.Field == field {
				delete(r.indexes, entry)
			}
		}
	case field != "" && value != "":
		entry := IndexEntry{Field: field, Value: value}
		if _, ok := r.indexes[entry]; !ok {
			return ErrIndexNotFound
		}
		delete(r.indexes, entry)
	default:
		return ErrAmbiguousIndexRemoval
	}
	return nil
}

// HasIndex reports whether the exact index pair is set.
func (r *Record) HasIndex(field, value string) bool {
	_, ok := r.indexes[IndexEntry{Field: field, Value: value}]
	return ok
}

// Indexes returns the record's secondary-index pairs, sorted by field then
// value. The returned slice is a copy.
func (r *Record) Indexes() []IndexEntry {
	entries := make([]IndexEntry, 0, len(r.indexes))
	for entry := range r.indexes {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Field != entries[j].Field {
			return entries[i].Field < entries[j].Field
		}
		return entries[i].Value < entries[j].Value
	})
	return entries
}

// AddLink appends a link verbatim. Links are ordered and duplicates are
// permitted.
func (r *Record) AddLink(link Link) {
	r.links = append(r.links, link)
}

// AddLinkTo appends a link derived from another record's bucket and key.
// The target must already have a key.
func (r *Record) AddLinkTo(target *Record, tag string) error {
	key, ok := target.Key()
	if !ok {
		return ErrNoKey
	}
	r.links = append(r.links, Link{Bucket: target.Bucket().Name(), Key: key, Tag: tag})
	return nil
}

// Links returns the record's outbound links in insertion order. The returned
// slice is a copy.
func (r *Record) Links() []Link {
	links := make([]Link, len(r.links))
	copy(links, r.links)
	return links
}
