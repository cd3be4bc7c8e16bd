// Package metrics collects prometheus metrics for access decisions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of observations made by the access middleware.
type Recorder interface {
	RecordDecision(class, outcome string)
	RecordLookupFailure(branch string)
	RecordLookupLatency(duration time.Duration)
}

// Collector records access metrics into a prometheus registry.
type Collector struct {
	decisions      *prometheus.CounterVec
	lookupFailures *prometheus.CounterVec
	lookupLatency  prometheus.Histogram
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loveludo",
			Subsystem: "access",
			Name:      "decisions_total",
			Help:      "Access decisions by path class and outcome.",
		}, []string{"class", "outcome"}),
		lookupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loveludo",
			Subsystem: "access",
			Name:      "lookup_failures_total",
			Help:      "Identity or profile lookups that failed, by branch.",
		}, []string{"branch"}),
		lookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loveludo",
			Subsystem: "access",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent in identity and profile lookups per request.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.decisions, c.lookupFailures, c.lookupLatency)
	return c
}

func (c *Collector) RecordDecision(class, outcome string) {
	c.decisions.WithLabelValues(class, outcome).Inc()
}

func (c *Collector) RecordLookupFailure(branch string) {
	c.lookupFailures.WithLabelValues(branch).Inc()
}

func (c *Collector) RecordLookupLatency(duration time.Duration) {
	c.lookupLatency.Observe(duration.Seconds())
}

// Noop discards every observation.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) RecordDecision(string, string)     {}
func (Noop) RecordLookupFailure(string)        {}
func (Noop) RecordLookupLatency(time.Duration) {}

// Handler returns the prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
