// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// CatalogService loads the catalog artifacts once and then idles until
// shutdown. onLoaded builds whatever depends on the artifacts, typically
// the resolver and recommendation engine.
//
// A failed load or a failing onLoaded returns an error wrapping
// suture.ErrTerminateSupervisorTree, which stops the whole tree so the
// process exits instead of serving without a catalog. The store keeps the
// error for the readiness endpoint until shutdown completes.
type CatalogService struct {
	store    *catalog.Store
	load     catalog.LoadFunc
	onLoaded func(*catalog.Artifacts) error
	logger   zerolog.Logger
	name     string
}

// NewCatalogService creates a catalog loading service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(store *catalog.Store, load catalog.LoadFunc, onLoaded func(*catalog.Artifacts) error, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		load:     load,
		onLoaded: onLoaded,
		logger:   logger.With().Str("service", "catalog").Logger(),
		name:     "catalog-loader",
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	start := time.Now()
	arts, err := s.store.Load(ctx, s.load)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error().Err(err).Msg("Catalog load failed")
		return fmt.Errorf("load catalog: %w: %w", err, suture.ErrTerminateSupervisorTree)
	}

	stats := arts.Stats()
	metrics.SetCatalogStats(stats.Movies, stats.SimilarityDim, time.Since(start))

	if s.onLoaded != nil {
		if err := s.onLoaded(arts); err != nil {
			s.logger.Error().Err(err).Msg("Catalog consumer setup failed")
			return fmt.Errorf("catalog consumers: %w: %w", err, suture.ErrTerminateSupervisorTree)
		}
	}

	event := s.logger.Info()
	if stats.Degraded {
		event = s.logger.Warn()
	}
	event.
		Int("movies", stats.Movies).
		Int("similarity_dim", stats.SimilarityDim).
		Bool("degraded", stats.Degraded).
		Dur("duration", time.Since(start)).
		Msg("Catalog ready")

	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *CatalogService) String() string {
	return s.name
}
