package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAttempt("answer", "groq", "llama", "failed", 100*time.Millisecond)
	c.ObserveAttempt("answer", "groq", "llama", "failed", 200*time.Millisecond)
	c.ObserveAttempt("answer", "openai", "gpt-4o-mini", "success", time.Second)
	c.IncEscalation("answer")
	c.IncExhausted("meta")

	if got := testutil.ToFloat64(c.attempts.WithLabelValues("answer", "groq", "llama", "failed")); got != 2 {
		t.Errorf("failed attempts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.attempts.WithLabelValues("answer", "openai", "gpt-4o-mini", "success")); got != 1 {
		t.Errorf("success attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.escalations.WithLabelValues("answer")); got != 1 {
		t.Errorf("escalations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.exhausted.WithLabelValues("meta")); got != 1 {
		t.Errorf("exhausted = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.latency); n != 2 {
		t.Errorf("latency series = %d, want 2", n)
	}
}

func TestCollectorsUseSeparateRegistries(t *testing.T) {
	// Registering twice on distinct registries must not panic.
	NewCollector(prometheus.NewRegistry())
	NewCollector(prometheus.NewRegistry())
}
