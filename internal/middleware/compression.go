// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// compressionLevel balances CPU against size for small JSON payloads.
const compressionLevel = 5

// compressor only encodes JSON; /metrics negotiates its own encoding in promhttp.
var compressor = chimiddleware.Compress(compressionLevel, "application/json")

// Compression gzips JSON responses for clients that accept it.
func Compression(next http.Handler) http.Handler {
	return compressor(next)
}
