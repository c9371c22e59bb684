// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("movies_path", cfg.Catalog.MoviesPath).
		Str("similarity_path", cfg.Catalog.SimilarityPath).
		Bool("posters", cfg.Poster.Enabled).
		Msg("Starting Reelmatch")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); restrict it for public deployments")
	}

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	posters, err := initPosters(&cfg.Poster, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := posters.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster store")
		}
	}()

	store := catalog.NewStore()
	handler := api.NewHandler(store, genre.Default(), posters.Resolver, api.HandlerConfig{
		Version:           version,
		RequestTimeout:    cfg.Server.RequestTimeout,
		PosterConcurrency: cfg.Poster.MaxConcurrency,
	})
	if posters.Breaker != nil {
		handler.SetBreakerState(posters.Breaker.State)
	}
	if posters.CacheStats != nil {
		handler.SetPosterCacheStats(posters.CacheStats)
	}

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: api.NewRouter(handler, api.RouterConfig{
			CORSOrigins:       cfg.Security.CORSOrigins,
			RateLimitRequests: cfg.Security.RateLimitReqs,
			RateLimitWindow:   cfg.Security.RateLimitWindow,
			RateLimitDisabled: cfg.Security.RateLimitDisabled,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(initCatalog(cfg, store, handler, logging.Logger()))
	if posters.Store != nil {
		tree.AddDataService(services.NewPosterStoreGCService(
			posters.Store, cfg.Poster.GCInterval, cfg.Poster.GCDiscardRatio, logging.WithComponent("poster")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
