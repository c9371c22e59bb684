// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// PersistentStore is the durable layer behind the in-memory cache.
type PersistentStore interface {
	Get(ctx context.Context, id int) (string, error)
	Put(ctx context.Context, id int, url string) error
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	ImageBase   string
	FallbackURL string

	// FetchTimeout bounds each shared lookup, store read and write included.
	FetchTimeout time.Duration

	CacheSize int
	CacheTTL  time.Duration
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ImageBase:    DefaultImageBase,
		FallbackURL:  FallbackURL,
		FetchTimeout: DefaultTimeout,
		CacheSize:    4096,
		CacheTTL:     24 * time.Hour,
	}
}

// Service resolves poster URLs through a cache, an optional persistent
// store and a remote Fetcher. It is safe for concurrent use.
type Service struct {
	cfg     ServiceConfig
	fetcher Fetcher
	store   PersistentStore
	cache   *cache.LRU[int, string]
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewService creates a poster service. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(fetcher Fetcher, store PersistentStore, cfg ServiceConfig, logger zerolog.Logger) *Service {
	def := DefaultServiceConfig()
	if cfg.ImageBase == "" {
		cfg.ImageBase = def.ImageBase
	}
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = def.FallbackURL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}

	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		cache:   cache.NewLRU[int, string](cfg.CacheSize, cfg.CacheTTL),
		logger:  logger.With().Str("component", "poster").Logger(),
	}
}

// Resolve returns the poster URL for id, or the fallback URL on any failure.
// Concurrent lookups of the same id share one remote fetch. A caller whose
// ctx ends gets the fallback at once; the shared fetch keeps running for
// the other waiters and still fills the cache.
func (s *Service) Resolve(ctx context.Context, id int) string {
	if url, ok := s.cache.Get(id); ok {
		metrics.RecordPosterCache(true)
		metrics.RecordPosterLookup("cache_hit")
		return url
	}
	metrics.RecordPosterCache(false)

	ch := s.group.DoChan(strconv.Itoa(id), func() (interface{}, error) {
		// Shared by every waiter, so it must outlive the caller that started it.
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FetchTimeout)
		defer cancel()
		return s.lookup(lookupCtx, id), nil
	})

	select {
	case res := <-ch:
		if url, ok := res.Val.(string); ok {
			return url
		}
		return s.cfg.FallbackURL
	case <-ctx.Done():
		metrics.RecordPosterLookup("canceled")
		return s.cfg.FallbackURL
	}
}

// lookup consults the store, then the fetcher. ctx bounds the whole lookup.

func (s *Service) lookup(ctx context.Context, id int) string {
	if s.store != nil {
		url, err := s.store.Get(ctx, id)
		if err == nil {
			s.cache.Add(id, url)
			metrics.RecordPosterLookup("store_hit")
			return url
		}
		if !errors.Is(err, ErrNotStored) {
			s.logger.Warn().Err(err).Int("movie_id", id).Msg("Poster store read failed")
		}
	}

	start := time.Now()
	path, err := s.fetcher.FetchPosterPath(ctx, id)
	metrics.RecordPosterFetch(time.Since(start))

	switch {
	case err == nil:
		url := ImageURL(s.cfg.ImageBase, path)
		s.remember(ctx, id, url)
		metrics.RecordPosterLookup("fetched")
		return url

	case errors.Is(err, ErrNoPoster):
		// Definitive answer from the API; remember the fallback.
		s.remember(ctx, id, s.cfg.FallbackURL)
		metrics.RecordPosterLookup("fallback")
		return s.cfg.FallbackURL

	default:
		s.logger.Debug().Err(err).Int("movie_id", id).Msg("Poster fetch failed, using fallback")
		metrics.RecordPosterLookup("fallback")
		return s.cfg.FallbackURL
	}
}

func (s *Service) remember(ctx context.Context, id int, url string) {
	s.cache.Add(id, url)
	if s.store == nil {
		return
	}
	if err := s.store.Put(ctx, id, url); err != nil {
		s.logger.Warn().Err(err).Int("movie_id", id).Msg("Poster store write failed")
	}
}

// CacheStats returns the in-memory cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}
