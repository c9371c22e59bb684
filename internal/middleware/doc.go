// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP middleware for the Reelmatch API.

Key Components:

  - RequestID: propagates or generates X-Request-ID and stores it for logging
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: chi Compress limited to JSON responses
  - SecurityHeaders: conservative response headers for a JSON API

All middleware has the func(http.Handler) http.Handler shape used by chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
	r.Use(middleware.SecurityHeaders)

Metrics are labeled with the chi route pattern rather than the raw path so
that /api/v1/movies/{id}/poster does not create one series per movie.
*/
package middleware
