// Package metrics exposes provider call metrics through Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records provider attempts and fallback decisions.
type Collector struct {
	attempts    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	escalations *prometheus.CounterVec
	exhausted   *prometheus.CounterVec
}

// NewCollector registers the collector's metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapwort_provider_attempts_total",
				Help: "Total number of provider attempts by call, family, model and outcome",
			},
			[]string{"call", "family", "model", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapwort_provider_latency_seconds",
				Help:    "Provider call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"call", "family"},
		),
		escalations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapwort_fallback_escalations_total",
				Help: "Total number of escalations to the universal fallback family",
			},
			[]string{"call"},
		),
		exhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapwort_fallback_exhausted_total",
				Help: "Total number of calls for which every provider failed",
			},
			[]string{"call"},
		),
	}
}

// ObserveAttempt records one provider attempt.
func (c *Collector) ObserveAttempt(call, family, model, outcome string, elapsed time.Duration) {
	c.attempts.WithLabelValues(call, family, model, outcome).Inc()
	c.latency.WithLabelValues(call, family).Observe(elapsed.Seconds())
}

// IncEscalation counts an escalation to the universal fallback.
func (c *Collector) IncEscalation(call string) {
	c.escalations.WithLabelValues(call).Inc()
}

// IncExhausted counts a call that failed on every provider.
func (c *Collector) IncExhausted(call string) {
	c.exhausted.WithLabelValues(call).Inc()
}
