package bytebuf

import "sync/atomic"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAlloc is called after a native store allocation of the given size.
	RecordAlloc(bytes int64)

	// RecordRelease is called when a store's reservation count reaches zero
	// and its memory is returned.
	RecordRelease(bytes int64)

	// RecordGrow is called after an elastic growth step.
	RecordGrow(oldCapacity, newCapacity int64)

	// RecordChunkMap is called when a mapped-file chunk is materialized.
	RecordChunkMap(bytes int64)

	// RecordChunkUnmap is called when a mapped-file chunk is unmapped.
	RecordChunkUnmap(bytes int64)

	// RecordCopy is called after a bulk copy of the given length.
	RecordCopy(bytes int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int64)       {}
func (NoopMetricsCollector) RecordRelease(int64)     {}
func (NoopMetricsCollector) RecordGrow(int64, int64) {}
func (NoopMetricsCollector) RecordChunkMap(int64)    {}
func (NoopMetricsCollector) RecordChunkUnmap(int64)  {}
func (NoopMetricsCollector) RecordCopy(int64)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount      atomic.Int64
	AllocBytes      atomic.Int64
	ReleaseCount    atomic.Int64
	ReleaseBytes    atomic.Int64
	GrowCount       atomic.Int64
	ChunkMapCount   atomic.Int64
	ChunkUnmapCount atomic.Int64
	CopyBytes       atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(bytes int64) {
	b.AllocCount.Add(1)
	b.AllocBytes.Add(bytes)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(bytes int64) {
	b.ReleaseCount.Add(1)
	b.ReleaseBytes.Add(bytes)
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCapacity, newCapacity int64) {
	b.GrowCount.Add(1)
}

// RecordChunkMap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkMap(bytes int64) {
	b.ChunkMapCount.Add(1)
}

// RecordChunkUnmap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkUnmap(bytes int64) {
	b.ChunkUnmapCount.Add(1)
}

// RecordCopy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCopy(bytes int64) {
	b.CopyBytes.Add(bytes)
}
