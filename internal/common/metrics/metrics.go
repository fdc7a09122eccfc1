// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of analysis pipeline stages in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30, 60},
		},
		[]string{"stage"},
	)

	PipelineStageOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_outcomes_total",
			Help: "Analysis pipeline stage results by outcome",
		},
		[]string{"stage", "outcome"},
	)

	ParserFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "job_parser_fallbacks_total",
			Help: "Job descriptions analyzed with the local single-task fallback",
		},
	)

	RecommendationCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_lookups_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)

	CandidatesScored = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_scored",
			Help:    "Number of candidate solutions scored per request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		},
		[]string{"strategy"},
	)
)

// Outcome labels for PipelineStageOutcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
