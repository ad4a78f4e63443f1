// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package metrics exposes Prometheus instrumentation for the matching and
// recommendation engines: run latency and volume, cache efficiency,
// collaborative-filtering computation counts, and benchmark activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Matching engine metrics
	MatchRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillsync_match_run_duration_seconds",
			Help:    "Duration of matching runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"algorithm"},
	)

	MatchCandidatesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_match_candidates_processed_total",
			Help: "Total candidates scored across matching runs",
		},
		[]string{"algorithm"},
	)

	MatchResultsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_match_results_returned_total",
			Help: "Total match results returned after threshold and truncation",
		},
		[]string{"algorithm"},
	)

	MatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_match_errors_total",
			Help: "Total matching run failures",
		},
		[]string{"algorithm", "error_type"},
	)

	// Manual override metrics
	OverridesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillsync_overrides_applied_total",
			Help: "Total manual match overrides applied",
		},
	)

	OverrideConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillsync_override_conflicts_total",
			Help: "Total override attempts rejected because the result was already overridden",
		},
	)

	// Collaborative filtering metrics
	CFSimilarityComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillsync_cf_similarity_computations_total",
			Help: "Total pairwise user similarity computations",
		},
	)

	CFCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillsync_cf_cache_hits_total",
			Help: "Total similarity cache hits",
		},
	)

	CFCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillsync_cf_cache_misses_total",
			Help: "Total similarity cache misses",
		},
	)

	CFRecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_cf_recommendation_runs_total",
			Help: "Total collaborative-filtering recommendation runs",
		},
		[]string{"strategy"},
	)

	// Benchmark metrics
	BenchmarkRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_benchmark_runs_total",
			Help: "Total approximate-matching benchmark runs",
		},
		[]string{"matcher"},
	)

	// Ops HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsync_http_requests_total",
			Help: "Total HTTP requests to the operational endpoints",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillsync_http_request_duration_seconds",
			Help:    "Duration of operational HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ObserveHTTPRequest records one operational HTTP request.
func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveMatchRun records one matching run.
func ObserveMatchRun(algorithm string, processed, returned int, elapsed time.Duration) {
	MatchRunDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	MatchCandidatesProcessed.WithLabelValues(algorithm).Add(float64(processed))
	MatchResultsReturned.WithLabelValues(algorithm).Add(float64(returned))
}
