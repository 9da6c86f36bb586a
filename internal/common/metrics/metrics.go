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

	FitScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bizpath_fit_score",
			Help:    "Distribution of fit scores produced per business model",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"business_model"},
	)

	PathsRanked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bizpath_paths_ranked_total",
			Help: "Total number of business models scored during ranking",
		},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bizpath_ranking_duration_seconds",
			Help:    "Time spent scoring and sorting a catalog for one quiz response",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	DegradedProfiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizpath_degraded_profiles_total",
			Help: "Catalog entries scored with a neutral trait fit because their profile was unusable",
		},
		[]string{"business_model"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizpath_cache_lookups_total",
			Help: "Redis cache lookups by cache and result",
		},
		[]string{"cache", "result"},
	)
)

// CacheHit and CacheMiss keep the result label values in one place.
func CacheHit(cache string)  { CacheLookups.WithLabelValues(cache, "hit").Inc() }
func CacheMiss(cache string) { CacheLookups.WithLabelValues(cache, "miss").Inc() }
