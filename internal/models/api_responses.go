// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"time"
)

// APIResponse is the envelope used by every JSON endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": {"mode": "similar", "count": 20, "items": [...]},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 3, "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a structured error.
//
// Error codes used by the API:
//   - VALIDATION_ERROR: malformed or out-of-range input
//   - EMPTY_QUERY: neither a title nor a genre was supplied
//   - INVALID_JSON: request body could not be decoded
//   - NOT_READY: catalog artifacts are still loading or failed to load
//   - TIMEOUT: the request deadline passed before recommendations were ready
//   - INTERNAL_ERROR: unexpected failure
//   - NOT_FOUND, METHOD_NOT_ALLOWED: unknown route or method
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
