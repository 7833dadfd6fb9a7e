package nearest

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addCounter      prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdd(count int, duration time.Duration, err error) {
//	    p.addCounter.Add(float64(count))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each Add or AddAll.
	// count is the number of elements, err is nil if successful.
	RecordAdd(count int, duration time.Duration, err error)

	// RecordRemove is called after each Remove.
	RecordRemove(removed bool, duration time.Duration, err error)

	// RecordSearch is called after each query.
	// k is the number of neighbors requested (0 for radius queries).
	RecordSearch(k int, duration time.Duration, err error)

	// RecordRebuild is called after each full index rebuild.
	// size is the number of elements re-indexed.
	RecordRebuild(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordRemove(bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRebuild(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	AddItems          atomic.Int64
	AddErrors         atomic.Int64
	RemoveCount       atomic.Int64
	RemoveHits        atomic.Int64
	RemoveErrors      atomic.Int64
	SearchCount       atomic.Int64
	SearchErrors      atomic.Int64
	SearchTotalNanos  atomic.Int64
	RebuildCount      atomic.Int64
	RebuildErrors     atomic.Int64
	RebuildTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(count int, _ time.Duration, err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
		return
	}
	b.AddItems.Add(int64(count))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(removed bool, _ time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
	if removed {
		b.RemoveHits.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRebuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRebuild(_ int, duration time.Duration, err error) {
	b.RebuildCount.Add(1)
	b.RebuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RebuildErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:        b.AddCount.Load(),
		AddItems:        b.AddItems.Load(),
		AddErrors:       b.AddErrors.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveHits:      b.RemoveHits.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		SearchCount:     b.SearchCount.Load(),
		SearchErrors:    b.SearchErrors.Load(),
		SearchAvgNanos:  avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		RebuildCount:    b.RebuildCount.Load(),
		RebuildErrors:   b.RebuildErrors.Load(),
		RebuildAvgNanos: avg(b.RebuildTotalNanos.Load(), b.RebuildCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount        int64
	AddItems        int64
	AddErrors       int64
	RemoveCount     int64
	RemoveHits      int64
	RemoveErrors    int64
	SearchCount     int64
	SearchErrors    int64
	SearchAvgNanos  int64
	RebuildCount    int64
	RebuildErrors   int64
	RebuildAvgNanos int64
}
