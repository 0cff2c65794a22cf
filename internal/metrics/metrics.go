// Package metrics exposes Prometheus instrumentation for the analyzer
// service: request counts, per-stage latency, cache effectiveness, and
// LLM round trips.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigo_requests_total",
		Help: "Analysis requests by outcome (ok, client_error, server_error)",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigo_stage_duration_seconds",
		Help:    "Pipeline stage latency (compile, analyze, llm, compare)",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
	}, []string{"stage"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigo_cache_lookups_total",
		Help: "Cache lookups by result (hit, miss)",
	}, []string{"result"})

	LLMCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigo_llm_calls_total",
		Help: "LLM completions by outcome (ok, error)",
	}, []string{"outcome"})

	LLMAgreement = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bigo_llm_agreement_score",
		Help:    "Agreement between deterministic and LLM bounds, percent",
		Buckets: []float64{0, 25, 50, 75, 100},
	})
)

// ObserveStage records one stage duration.
func ObserveStage(stage string, d time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Timer returns a function that records the elapsed time for a stage
// when called. Meant for defer.
func Timer(stage string) func() {
	start := time.Now()
	return func() { ObserveStage(stage, time.Since(start)) }
}
