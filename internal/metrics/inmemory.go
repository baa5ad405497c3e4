package metrics

import (
	"fmt"
	"sync"
	"time"
)

// ResourceStats aggregates reads of one resource.
type ResourceStats struct {
	Lists            uint64
	RowsServed       uint64
	DurationTotalNs  int64
	ConnectionErrors uint64
	QueryErrors      uint64
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Resources map[string]ResourceStats
	// HTTPRequests counts requests keyed by "METHOD route status".
	HTTPRequests map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu        sync.Mutex
	resources map[string]*ResourceStats
	requests  map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		resources: make(map[string]*ResourceStats),
		requests:  make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := Snapshot{
		Resources:    make(map[string]ResourceStats, len(m.resources)),
		HTTPRequests: make(map[string]uint64, len(m.requests)),
	}
	for name, stats := range m.resources {
		out.Resources[name] = *stats
	}
	for key, n := range m.requests {
		out.HTTPRequests[key] = n
	}
	return out
}

// ObserveHTTPRequest counts a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[fmt.Sprintf("%s %s %d", method, route, status)]++
}

// ObserveList records a successful list.
func (m *InMemoryRecorder) ObserveList(resource string, rows int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats(resource)
	s.Lists++
	s.RowsServed += uint64(rows)
	s.DurationTotalNs += duration.Nanoseconds()
}

// IncStoreError counts a failed list by error kind.
func (m *InMemoryRecorder) IncStoreError(resource, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats(resource)
	switch kind {
	case "connection":
		s.ConnectionErrors++
	default:
		s.QueryErrors++
	}
}

func (m *InMemoryRecorder) stats(resource string) *ResourceStats {
	s, ok := m.resources[resource]
	if !ok {
		s = &ResourceStats{}
		m.resources[resource] = s
	}
	return s
}
