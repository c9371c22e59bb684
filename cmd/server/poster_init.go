// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/poster"
)

// posterComponents holds the poster lookup chain. Resolver is nil when
// poster lookups are disabled; Store is nil without POSTER_STORE_PATH.
type posterComponents struct {
	Resolver   poster.Resolver
	Breaker    *poster.BreakerFetcher
	Store      *poster.Store
	CacheStats func() cache.Stats
}

// Close releases the persistent store, if any.
func (p *posterComponents) Close() error {
	if p.Store == nil {
		return nil
	}
	return p.Store.Close()
}

// initPosters builds client -> circuit breaker -> cached service.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initPosters(cfg *config.PosterConfig, logger zerolog.Logger) (*posterComponents, error) {
	if !cfg.Enabled {
		logger.Info().Msg("Poster lookups disabled (POSTER_ENABLED=false), serving fallback images")
		return &posterComponents{}, nil
	}

	client := poster.NewClient(poster.ClientConfig{
		APIBase:   cfg.APIBase,
		APIKey:    cfg.APIKey,
		Language:  cfg.Language,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, &http.Client{Timeout: cfg.Timeout})

	breaker := poster.NewBreakerFetcher(client, poster.BreakerConfig{
		Name:         "poster-api",
		MaxRequests:  cfg.Breaker.MaxRequests,
		Interval:     cfg.Breaker.Interval,
		Timeout:      cfg.Breaker.Timeout,
		MinRequests:  cfg.Breaker.MinRequests,
		FailureRatio: cfg.Breaker.FailureRatio,
	})

	components := &posterComponents{Breaker: breaker}

	// A nil *poster.Store must not reach the PersistentStore interface.
	var persistent poster.PersistentStore
	if cfg.StorePath != "" {
		store, err := poster.OpenStore(cfg.StorePath, cfg.StoreTTL)
		if err != nil {
			return nil, err
		}
		components.Store = store
		persistent = store
		logger.Info().Str("path", cfg.StorePath).Dur("ttl", cfg.StoreTTL).Msg("Persistent poster store opened")
	}

	service := poster.NewService(breaker, persistent, poster.ServiceConfig{
		ImageBase:    cfg.ImageBase,
		FallbackURL:  cfg.FallbackURL,
		FetchTimeout: cfg.Timeout,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	}, logger)
	components.Resolver = service
	components.CacheStats = service.CacheStats

	logger.Info().
		Str("api_base", cfg.APIBase).
		Float64("rate_limit_rps", cfg.RateLimit).
		Int("cache_size", cfg.CacheSize).
		Msg("Poster lookups enabled")

	return components, nil
}
