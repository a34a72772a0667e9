package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes in use by the heap
	TotalAlloc uint64 // cumulative bytes allocated
	Sys        uint64 // total bytes obtained from the OS
	Mallocs    uint64 // cumulative heap objects allocated
	NumGC      uint32 // completed GC cycles
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
	}
}

// Since returns the allocation activity between an earlier snapshot and s.
// HeapAlloc and Sys are taken from s as they are levels, not counters.
func (s MemorySnapshot) Since(before MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:  s.HeapAlloc,
		TotalAlloc: s.TotalAlloc - before.TotalAlloc,
		Sys:        s.Sys,
		Mallocs:    s.Mallocs - before.Mallocs,
		NumGC:      s.NumGC - before.NumGC,
	}
}
