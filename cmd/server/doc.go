// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch serves "more like this" movie recommendations from a precomputed
item-item similarity matrix. A free-text title is resolved against the
catalog (exactly, then approximately) and the nearest neighbors in the
matrix are returned, optionally filtered by genre. With no title, the
catalog is filtered by genre alone.

# Application Architecture

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   ├── Catalog loader (movies + similarity matrix, load once)
	│   └── Poster store GC (if POSTER_STORE_PATH is set)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Posters: TMDB client, circuit breaker, LRU and optional BadgerDB cache
 4. HTTP: Chi router with request ID, CORS, rate limit and metrics middleware
 5. Supervisor Tree: Suture v4 starts the loader and the HTTP server together

The HTTP server answers /api/v1/health/live immediately; /api/v1/health/ready
turns 200 once the catalog is loaded. A missing or malformed artifact stops
the supervisor tree and the server exits with status 1.

# Configuration

	MOVIES_PATH=/data/movies.json
	SIMILARITY_PATH=/data/similarity.json
	HTTP_PORT=8501
	POSTER_ENABLED=true TMDB_API_KEY=...

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, then the poster store is closed.
*/
package main
