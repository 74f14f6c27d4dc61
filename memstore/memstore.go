package memstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/keva"
	"github.com/hupe1980/keva/codec"
)

// ErrKeyExists is returned by Put and PutNew when IfNoneMatch is set and the
// key already holds a value.
var ErrKeyExists = errors.New("key already exists")

// ErrVTagNotFound is returned by Get when the requested sibling version tag
// does not exist for the key.
var ErrVTagNotFound = errors.New("version tag not found")

// Store is an in-memory keva.Transport.
//
// Writes carrying a vector clock that descends the key's current clock
// replace its contents. Causally concurrent writes append a sibling instead,
// unless last-write-wins mode is enabled.
type Store struct {
	mu        sync.RWMutex
	actor     string
	allowMult bool
	buckets   map[string]map[string]*entry
}

type entry struct {
	clock    clock
	versions []version
}

// version is a single stored value. snap.EncodedData holds the at-rest
// bytes, compressed per the version's content encoding.
type version struct {
	vtag string
	snap keva.Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithActor sets the actor id the store ticks in vector clocks. Stores that
// should look like distinct replicas to causality checks need distinct
// actors.
func WithActor(actor string) Option {
	return func(s *Store) { s.actor = actor }
}

// WithLastWriteWins disables sibling creation: causally concurrent writes
// simply replace the key's contents.
func WithLastWriteWins(lww bool) Option {
	return func(s *Store) { s.allowMult = !lww }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		actor:     uuid.NewString(),
		allowMult: true,
		buckets:   make(map[string]map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ keva.Transport = (*Store)(nil)

// Put performs a conditional update of a keyed record.
func (s *Store) Put(ctx context.Context, rec *keva.Record, opts keva.StoreOptions) (*keva.Result, error) {
	key, ok := rec.Key()
	if !ok {
		return nil, keva.ErrNoKey
	}
	return s.put(rec, key, opts)
}

// PutNew stores a keyless record under a server-assigned key. The result is
// always populated so the record can adopt its key, regardless of
// ReturnBody.
func (s *Store) PutNew(ctx context.Context, rec *keva.Record, opts keva.StoreOptions) (*keva.Result, error) {
	opts.ReturnBody = true
	return s.put(rec, "", opts)
}

func (s *Store) put(rec *keva.Record, key string, opts keva.StoreOptions) (*keva.Result, error) {
	// Encode outside the lock: lazy encoding mutates the record's cell.
	ver, err := versionFromRecord(rec)
	if err != nil {
		return nil, err
	}
	written, err := parseClock(rec.VClock)
	if err != nil {
		return nil, fmt.Errorf("malformed vclock: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bkt := s.bucketLocked(rec.Bucket().Name())
	if key == "" {
		key = s.unusedKeyLocked(bkt)
	}
	ver.snap.Key = key

	e := bkt[key]
	if e != nil && opts.IfNoneMatch {
		return nil, ErrKeyExists
	}

	switch {
	case e == nil:
		e = &entry{clock: written.merge(nil)}
		bkt[key] = e
	case written.descends(e.clock):
		// The writer saw the latest state; this write supersedes it.
		e.versions = nil
		e.clock = written.merge(e.clock)
	case s.allowMult:
		e.clock = e.clock.merge(written)
	default:
		e.versions = nil
		e.clock = e.clock.merge(written)
	}
	e.clock.tick(s.actor)
	e.versions = append(e.versions, ver)

	if !opts.ReturnBody {
		return &keva.Result{Kind: keva.ResultNoChange}, nil
	}

	// A put echoes the version just written, never a conflict, even if the
	// key now holds siblings. The conflict surfaces on the next fetch.
	snap, err := snapshotLocked(e, ver)
	if err != nil {
		return nil, err
	}
	return &keva.Result{Kind: keva.ResultPopulated, Snapshot: snap}, nil
}

// Get fetches the current state of a keyed record, or a single sibling
// version when opts.VTag is set.
func (s *Store) Get(ctx context.Context, rec *keva.Record, opts keva.FetchOptions) (*keva.Result, error) {
	key, ok := rec.Key()
	if !ok {
		return nil, keva.ErrNoKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.buckets[rec.Bucket().Name()][key]
	if e == nil {
		return &keva.Result{Kind: keva.ResultNotFound}, nil
	}

	if opts.VTag != "" {
		for i := range e.versions {
			if e.versions[i].vtag == opts.VTag {
				snap, err := snapshotLocked(e, e.versions[i])
				if err != nil {
					return nil, err
				}
				return &keva.Result{Kind: keva.ResultPopulated, Snapshot: snap}, nil
			}
		}
		return nil, ErrVTagNotFound
	}
	return resultLocked(e)
}

// Delete removes the record's key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, rec *keva.Record, opts keva.DeleteOptions) error {
	key, ok := rec.Key()
	if !ok {
		return keva.ErrNoKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets[rec.Bucket().Name()], key)
	return nil
}

// Len returns the number of keys held in the named bucket.
func (s *Store) Len(bucket string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.buckets[bucket])
}

func (s *Store) bucketLocked(name string) map[string]*entry {
	bkt, ok := s.buckets[name]
	if !ok {
		bkt = make(map[string]*entry)
		s.buckets[name] = bkt
	}
	return bkt
}

func (s *Store) unusedKeyLocked(bkt map[string]*entry) string {
	for {
		key := uuid.NewString()
		if _, ok := bkt[key]; !ok {
			return key
		}
	}
}

// resultLocked renders an entry as a transport result: a populated snapshot
// for a single version, a conflict listing version tags otherwise.
func resultLocked(e *entry) (*keva.Result, error) {
	if len(e.versions) == 1 {
		snap, err := snapshotLocked(e, e.versions[0])
		if err != nil {
			return nil, err
		}
		return &keva.Result{Kind: keva.ResultPopulated, Snapshot: snap}, nil
	}

	vtags := make([]string, len(e.versions))
	for i := range e.versions {
		vtags[i] = e.versions[i].vtag
	}
	return &keva.Result{
		Kind:   keva.ResultConflict,
		VTags:  vtags,
		VClock: e.clock.bytes(),
	}, nil
}

// snapshotLocked renders one stored version as a snapshot, decompressing the
// at-rest bytes and stamping the entry's current clock.
func snapshotLocked(e *entry, v version) (*keva.Snapshot, error) {
	data, err := codec.Decompress(v.snap.ContentEncoding, v.snap.EncodedData)
	if err != nil {
		return nil, err
	}

	snap := keva.Snapshot{
		Key:             v.snap.Key,
		VClock:          e.clock.bytes(),
		ContentType:     v.snap.ContentType,
		Charset:         v.snap.Charset,
		ContentEncoding: v.snap.ContentEncoding,
		UserMeta:        maps.Clone(v.snap.UserMeta),
		Indexes:         append([]keva.IndexEntry(nil), v.snap.Indexes...),
		Links:           append([]keva.Link(nil), v.snap.Links...),
		EncodedData:     append([]byte(nil), data...),
	}
	return &snap, nil
}

func versionFromRecord(rec *keva.Record) (version, error) {
	data, err := rec.EncodedData()
	if err != nil {
		return version{}, err
	}
	atRest, err := codec.Compress(rec.ContentEncoding, data)
	if err != nil {
		return version{}, err
	}

	return version{
		vtag: uuid.NewString(),
		snap: keva.Snapshot{
			ContentType:     rec.ContentType,
			Charset:         rec.Charset,
			ContentEncoding: rec.ContentEncoding,
			UserMeta:        maps.Clone(rec.UserMeta),
			Indexes:         rec.Indexes(),
			Links:           rec.Links(),
			EncodedData:     append([]byte(nil), atRest...),
		},
	}, nil
}
