// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/resolver"
)

// Backend bundles the components built from one set of loaded artifacts.
type Backend struct {
	Artifacts *catalog.Artifacts
	Resolver  *resolver.Resolver
	Engine    *recommend.Engine
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Version string

	// RequestTimeout bounds one recommendation including poster lookups.
	RequestTimeout time.Duration

	// PosterConcurrency bounds parallel poster lookups per response.
	PosterConcurrency int
}

// DefaultHandlerConfig returns the default handler settings.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		Version:           "dev",
		RequestTimeout:    10 * time.Second,
		PosterConcurrency: 8,
	}
}

// Handler serves the API endpoints.
type Handler struct {
	cfg       HandlerConfig
	store     *catalog.Store
	backend   atomic.Pointer[Backend]
	genres    *genre.Taxonomy
	posters   poster.Resolver
	breaker   func() string
	cache     func() cache.Stats
	startTime time.Time
}

// NewHandler creates a handler. store reports load progress for readiness;
// posters may be nil, in which case every poster is the fallback image.
func NewHandler(store *catalog.Store, genres *genre.Taxonomy, posters poster.Resolver, cfg HandlerConfig) *Handler {
	def := DefaultHandlerConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.PosterConcurrency <= 0 {
		cfg.PosterConcurrency = def.PosterConcurrency
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if genres == nil {
		genres = genre.Default()
	}
	if posters == nil {
		posters = poster.Fallback
	}
	if store == nil {
		store = catalog.NewStore()
	}

	return &Handler{
		cfg:       cfg,
		store:     store,
		genres:    genres,
		posters:   posters,
		startTime: time.Now(),
	}
}

// SetBackend installs the recommendation backend.
func (h *Handler) SetBackend(b *Backend) {
	h.backend.Store(b)
}

// SetBreakerState registers a function reporting the poster circuit
// breaker state for the readiness endpoint.
func (h *Handler) SetBreakerState(fn func() string) {
	h.breaker = fn
}

// SetPosterCacheStats registers a function reporting the poster cache
// counters for the readiness endpoint.
func (h *Handler) SetPosterCacheStats(fn func() cache.Stats) {
	h.cache = fn
}

func (h *Handler) currentBackend() *Backend {
	return h.backend.Load()
}
