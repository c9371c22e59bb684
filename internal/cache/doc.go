// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides a thread-safe, generic in-memory LRU cache with TTL
expiration.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.Mutex)
  - Bounded size with least-recently-used eviction
  - Time-to-live expiration, checked lazily on Get
  - Hit, miss and eviction counters

# Use Cases

Poster URLs resolved from the remote metadata API are cached per movie id so
that repeated recommendations for popular titles do not hit the network.

# Usage Example

	posters := cache.NewLRU[int, string](4096, 24*time.Hour)
	posters.Add(27205, "https://image.tmdb.org/t/p/w500/abc.jpg")

	if url, ok := posters.Get(27205); ok {
	    // use url
	}

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
