// Package memstore provides an in-memory keva.Transport implementation.
//
// It keeps one vector clock per key and produces siblings when writes are
// causally concurrent, which makes it suitable for exercising conflict
// resolution in tests and examples without a running store. It stores
// payloads at rest honoring each record's content encoding.
//
// Thread-safe for concurrent use. Not durable.
package memstore
