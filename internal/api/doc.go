// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP API for Reelmatch.

Routes:

	GET  /api/v1/health/live             process is up
	GET  /api/v1/health/ready            catalog loaded (503 while loading or after a failed load)
	GET  /api/v1/recommendations         ?q=<title>&genres=A,B&posters=true
	POST /api/v1/recommendations         {"query": "...", "genres": [...], "posters": true}
	GET  /api/v1/genres                  canonical genre labels in display order
	GET  /api/v1/resolve                 ?q=<title>, shows what a query resolves to
	GET  /api/v1/movies/{id}/poster      poster URL, always 200 with a fallback
	GET  /metrics                        Prometheus

Every JSON response uses the models.APIResponse envelope. A recommendation
request with neither a title nor a genre is rejected with EMPTY_QUERY; a
title that does not resolve is a successful response with match_kind "none"
and no items.

The Handler starts without a recommendation backend. The catalog service
installs one with SetBackend once the artifacts are loaded; until then the
recommendation and resolve endpoints answer 503 NOT_READY.
*/
package api
