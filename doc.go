// Package keva models a single versioned record in a distributed
// eventually-consistent key-value store, and the logic needed to reconcile
// concurrent writes to it.
//
// The package owns three intertwined pieces of state management:
//
//   - lazy, mutually exclusive dual representation of a record's value as a
//     decoded application value or encoded wire bytes, keyed by a
//     content-type-driven codec registry (see the codec subpackage)
//   - representation and lazy resolution of write conflicts ("siblings")
//     surfaced by the store when concurrent updates cannot be causally
//     ordered
//   - a small lifecycle governing when a record may legally be stored,
//     reloaded or cleared
//
// All network concerns live behind the Transport interface. The memstore
// subpackage ships an in-memory Transport with real vector clocks, suitable
// for tests and examples.
//
// # Quick Start
//
//	client := keva.NewClient(memstore.New())
//	bucket := client.Bucket("users")
//
//	rec, _ := bucket.NewRecord("alice")
//	rec.SetData(map[string]any{"email": "alice@example.com"})
//	if err := rec.Store(ctx); err != nil {
//	    ...
//	}
//
//	if err := rec.Reload(ctx); err != nil {
//	    ...
//	}
//	if rec.Conflict() {
//	    winner, _ := rec.Sibling(ctx, 0)
//	    winner.SetData(merged)
//	    _ = winner.Store(ctx)
//	}
//
// A Record is not safe for concurrent mutation; callers must serialize
// access to each record they own. Transports must be safe for concurrent
// use.
package keva
