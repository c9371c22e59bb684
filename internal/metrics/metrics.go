// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode", "outcome"}, // outcome: "results", "empty", "unresolved"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation computation time in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"mode"},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of items returned per recommendation",
			Buckets: []float64{0, 1, 5, 10, 15, 20},
		},
	)

	ResolverOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_outcomes_total",
			Help: "Title resolution outcomes",
		},
		[]string{"kind"}, // "exact", "fuzzy", "none"
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	CatalogSimilarityDim = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_similarity_dimension",
			Help: "Dimension of the loaded similarity matrix",
		},
	)

	CatalogDimensionMismatch = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dimension_mismatch",
			Help: "1 when the similarity dimension differs from the catalog length",
		},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Time taken to load the catalog artifacts",
		},
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Poster URL lookups by outcome",
		},
		[]string{"outcome"}, // "cache_hit", "store_hit", "fetched", "fallback", "canceled"
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_fetch_duration_seconds",
			Help:    "Duration of remote poster metadata fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	PosterCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_hits_total",
			Help: "Total number of in-memory poster cache hits",
		},
	)

	PosterCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_misses_total",
			Help: "Total number of in-memory poster cache misses",
		},
	)

	PosterStoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_store_gc_runs_total",
			Help: "Persistent poster store value-log GC runs",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one served recommendation.
// matchKind is empty for genre-only requests.
func RecordRecommendation(mode, matchKind string, results int, duration time.Duration) {
	outcome := "results"
	switch {
	case matchKind == "none":
		outcome = "unresolved"
	case results == 0:
		outcome = "empty"
	}

	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendResults.Observe(float64(results))
	if matchKind != "" {
		ResolverOutcomes.WithLabelValues(matchKind).Inc()
	}
}

// SetCatalogStats publishes the loaded artifact sizes.
func SetCatalogStats(movies, similarityDim int, loadDuration time.Duration) {
	CatalogMovies.Set(float64(movies))
	CatalogSimilarityDim.Set(float64(similarityDim))
	CatalogLoadDuration.Set(loadDuration.Seconds())
	if movies != similarityDim {
		CatalogDimensionMismatch.Set(1)
	} else {
		CatalogDimensionMismatch.Set(0)
	}
}

// RecordPosterLookup records how a poster URL was obtained.
func RecordPosterLookup(outcome string) {
	PosterLookups.WithLabelValues(outcome).Inc()
}

// RecordPosterCache records an in-memory poster cache access.
func RecordPosterCache(hit bool) {
	if hit {
		PosterCacheHits.Inc()
	} else {
		PosterCacheMisses.Inc()
	}
}

// RecordPosterFetch records the duration of a remote metadata fetch.
func RecordPosterFetch(duration time.Duration) {
	PosterFetchDuration.Observe(duration.Seconds())
}

// RecordPosterStoreGC records a persistent store GC pass.
func RecordPosterStoreGC(result string) {
	PosterStoreGCRuns.WithLabelValues(result).Inc()
}
