// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads and validates Reelmatch configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:
  - Struct defaults (defaultConfig)
  - A YAML file: $CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/reelmatch/config.yaml
  - Environment variables, mapped explicitly (see envMappings)

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8501)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - HTTP_REQUEST_TIMEOUT: handler deadline, below HTTP_WRITE_TIMEOUT (default: 10s)

Catalog:
  - MOVIES_PATH, SIMILARITY_PATH: artifact files
  - CATALOG_FORMAT: auto, json or csv (default: auto)
  - CATALOG_STRICT_DIMENSIONS: refuse to start on a size mismatch

Recommendation:
  - MAX_RESULTS (default: 20)
  - CANDIDATE_WINDOW (default: 399)
  - MIN_SIMILARITY (default: 0.6)
  - SIMILARITY_METRIC: lcs, levenshtein or jaro-winkler (default: lcs)

Posters (disabled unless POSTER_ENABLED=true):
  - TMDB_API_KEY (required when enabled), TMDB_API_BASE, TMDB_IMAGE_BASE, TMDB_LANGUAGE
  - POSTER_TIMEOUT, POSTER_RATE_LIMIT, POSTER_BURST, POSTER_MAX_CONCURRENCY
  - POSTER_CACHE_SIZE, POSTER_CACHE_TTL
  - POSTER_STORE_PATH (enables the BadgerDB cache), POSTER_STORE_TTL,
    POSTER_GC_INTERVAL, POSTER_GC_DISCARD_RATIO
  - POSTER_BREAKER_* circuit breaker settings

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
