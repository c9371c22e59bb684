// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Recommendation mode, outcome and latency
  - Title resolution outcomes
  - Catalog size and dimension mismatch
  - Poster lookups, cache efficiency and circuit breaker state

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

Recommendation Metrics:
  - recommend_requests_total: Requests by mode and outcome (counter)
    Labels: mode (similar, genre), outcome (results, empty, unresolved)
  - recommend_duration_seconds: Engine latency (histogram)
  - recommend_results: Items per response (histogram)
  - resolver_outcomes_total: Resolution kinds (counter)
    Labels: kind (exact, fuzzy, none)

Catalog Metrics:
  - catalog_movies, catalog_similarity_dimension (gauges)
  - catalog_dimension_mismatch: 1 in degraded mode (gauge)
  - catalog_load_duration_seconds (gauge)

Poster Metrics:
  - poster_lookups_total: Labels: outcome (cache_hit, store_hit, fetched, fallback, canceled)
  - poster_fetch_duration_seconds (histogram)
  - poster_cache_hits_total, poster_cache_misses_total (counters)
  - poster_store_gc_runs_total: Labels: result

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Thread Safety

All collectors are registered with the default registry via promauto and are
safe for concurrent use.
*/
package metrics
