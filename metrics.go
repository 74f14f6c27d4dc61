package keva

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordStore is called after each store operation.
	// duration is the total time taken, err is nil if successful.
	RecordStore(duration time.Duration, err error)

	// RecordFetch is called after each fetch operation.
	RecordFetch(duration time.Duration, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)

	// RecordConflict is called when a fetch surfaces causally-concurrent
	// versions. siblings is the size of the conflict set.
	RecordConflict(siblings int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStore(time.Duration, error)  {}
func (NoopMetricsCollector) RecordFetch(time.Duration, error)  {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error) {}
func (NoopMetricsCollector) RecordConflict(int)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	StoreCount       atomic.Int64
	StoreErrors      atomic.Int64
	StoreTotalNanos  atomic.Int64
	FetchCount       atomic.Int64
	FetchErrors      atomic.Int64
	FetchTotalNanos  atomic.Int64
	DeleteCount      atomic.Int64
	DeleteErrors     atomic.Int64
	DeleteTotalNanos atomic.Int64
	ConflictCount    atomic.Int64
	SiblingsObserved atomic.Int64
}

// RecordStore records a store operation.
func (m *BasicMetricsCollector) RecordStore(duration time.Duration, err error) {
	m.StoreCount.Add(1)
	m.StoreTotalNanos.Add(int64(duration))
	if err != nil {
		m.StoreErrors.Add(1)
	}
}

// RecordFetch records a fetch operation.
func (m *BasicMetricsCollector) RecordFetch(duration time.Duration, err error) {
	m.FetchCount.Add(1)
	m.FetchTotalNanos.Add(int64(duration))
	if err != nil {
		m.FetchErrors.Add(1)
	}
}

// RecordDelete records a delete operation.
func (m *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	m.DeleteCount.Add(1)
	m.DeleteTotalNanos.Add(int64(duration))
	if err != nil {
		m.DeleteErrors.Add(1)
	}
}

// RecordConflict records an observed conflict set.
func (m *BasicMetricsCollector) RecordConflict(siblings int) {
	m.ConflictCount.Add(1)
	m.SiblingsObserved.Add(int64(siblings))
}
