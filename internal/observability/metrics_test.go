package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordTurn()
	m.RecordTurn()
	m.RecordRequest("ollama", 100*time.Millisecond, false)
	m.RecordRequest("ollama", 300*time.Millisecond, false)
	m.RecordRequest("groq", 50*time.Millisecond, true)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TurnsTotal)
	assert.Equal(t, int64(3), s.RequestTotal)
	assert.Equal(t, int64(1), s.RequestFailed)
	assert.InDelta(t, 66.6, s.SuccessRate(), 0.1)

	ollama := s.Backends["ollama"]
	assert.Equal(t, int64(2), ollama.RequestCount)
	assert.Equal(t, int64(0), ollama.ErrorCount)
	assert.Equal(t, int64(200), ollama.AverageDurationMs)

	groq := s.Backends["groq"]
	assert.Equal(t, int64(1), groq.ErrorCount)
}

func TestMetricsSuccessRateWithNoRequests(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 100.0, m.Snapshot().SuccessRate())
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordTurn()
	m.RecordRequest("ollama", time.Millisecond, false)

	m.Reset()

	s := m.Snapshot()
	assert.Zero(t, s.TurnsTotal)
	assert.Zero(t, s.RequestTotal)
	assert.Empty(t, s.Backends)
}
