// File path: internal/metrics/metrics.go

// Package metrics exposes the service's prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts survey sessions started.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyforge",
		Name:      "sessions_created_total",
		Help:      "Number of survey sessions created.",
	})

	// TurnsProcessed counts user turns run through the workflow engine.
	TurnsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyforge",
		Name:      "turns_processed_total",
		Help:      "Number of chat turns processed.",
	})

	// TurnDuration observes end-to-end turn latency, model calls included.
	TurnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "surveyforge",
		Name:      "turn_duration_seconds",
		Help:      "Latency of one chat turn.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	// StepAdvances counts completions per workflow step.
	StepAdvances = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyforge",
		Name:      "step_advances_total",
		Help:      "Workflow step completions by step id.",
	}, []string{"step"})

	// ExternalFailures counts degraded external calls by kind.
	ExternalFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyforge",
		Name:      "external_failures_total",
		Help:      "External dependency failures by kind (llm, catalog, store).",
	}, []string{"kind"})

	// Exports counts document downloads by format.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyforge",
		Name:      "exports_total",
		Help:      "Survey document exports by format.",
	}, []string{"format"})
)
