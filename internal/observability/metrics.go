// Package observability collects in-process counters for the routing
// layer. This is a lightweight alternative to an external metrics
// stack; everything lives in memory and is reported on shutdown.
package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates counters for routed model requests.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	turnsTotal    atomic.Int64

	backendMetrics map[string]*BackendMetrics
}

// BackendMetrics holds counters for one model backend.
type BackendMetrics struct {
	requestCount  atomic.Int64
	errorCount    atomic.Int64
	totalDuration atomic.Int64 // milliseconds
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		backendMetrics: make(map[string]*BackendMetrics),
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordTurn counts one processed conversation turn.
func (m *Metrics) RecordTurn() {
	m.turnsTotal.Add(1)
}

// RecordRequest counts one routed request and its latency.
func (m *Metrics) RecordRequest(backend string, duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}

	bm := m.getBackendMetrics(backend)
	bm.requestCount.Add(1)
	bm.totalDuration.Add(duration.Milliseconds())
	if failed {
		bm.errorCount.Add(1)
	}
}

func (m *Metrics) getBackendMetrics(backend string) *BackendMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm, ok := m.backendMetrics[backend]
	if !ok {
		bm = &BackendMetrics{}
		m.backendMetrics[backend] = bm
	}
	return bm
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.turnsTotal.Store(0)

	m.mu.Lock()
	m.backendMetrics = make(map[string]*BackendMetrics)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	backends := make(map[string]*BackendSnapshot, len(m.backendMetrics))
	for name, bm := range m.backendMetrics {
		count := bm.requestCount.Load()
		var avg int64
		if count > 0 {
			avg = bm.totalDuration.Load() / count
		}
		backends[name] = &BackendSnapshot{
			RequestCount:      count,
			ErrorCount:        bm.errorCount.Load(),
			AverageDurationMs: avg,
		}
	}

	return &MetricsSnapshot{
		TurnsTotal:    m.turnsTotal.Load(),
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		Backends:      backends,
	}
}

// MetricsSnapshot is a point-in-time view of the collected counters.
type MetricsSnapshot struct {
	TurnsTotal    int64
	RequestTotal  int64
	RequestFailed int64
	Backends      map[string]*BackendSnapshot
}

// BackendSnapshot holds the per-backend view.
type BackendSnapshot struct {
	RequestCount      int64
	ErrorCount        int64
	AverageDurationMs int64
}

// SuccessRate returns the backend attempt success rate as a percentage.
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
