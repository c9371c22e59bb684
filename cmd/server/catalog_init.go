// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/resolver"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// initCatalog returns the supervised service that loads the artifacts and
// installs the recommendation backend on the handler.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(cfg *config.Config, store *catalog.Store, handler *api.Handler, logger zerolog.Logger) *services.CatalogService {
	loader := catalog.NewLoader(catalog.LoaderConfig{
		MoviesPath:       cfg.Catalog.MoviesPath,
		SimilarityPath:   cfg.Catalog.SimilarityPath,
		Format:           cfg.Catalog.Format,
		StrictDimensions: cfg.Catalog.StrictDimensions,
	}, logger)

	onLoaded := func(arts *catalog.Artifacts) error {
		backend, err := buildBackend(cfg, arts, logger)
		if err != nil {
			return err
		}
		handler.SetBackend(backend)
		return nil
	}

	return services.NewCatalogService(store, loader.Load, onLoaded, logger)
}

// buildBackend constructs the resolver and engine over loaded artifacts.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func buildBackend(cfg *config.Config, arts *catalog.Artifacts, logger zerolog.Logger) (*api.Backend, error) {
	res, err := resolver.New(arts.Catalog.Titles(), resolver.Config{
		MinSimilarity: cfg.Recommend.MinSimilarity,
		Metric:        resolver.Metric(cfg.Recommend.SimilarityMetric),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.MaxResults = cfg.Recommend.MaxResults
	engineCfg.CandidateWindow = cfg.Recommend.CandidateWindow

	engine, err := recommend.NewEngine(arts, res, genre.Default(), engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	return &api.Backend{Artifacts: arts, Resolver: res, Engine: engine}, nil
}
