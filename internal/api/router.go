// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// RouterConfig holds CORS and rate limit settings for the router.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultRouterConfig returns permissive CORS and 100 requests per minute per IP.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// withDefaults fills unset fields from DefaultRouterConfig.
//
//nolint:gocritic // hugeParam: cfg is read once at startup
func (cfg RouterConfig) withDefaults() RouterConfig {
	def := DefaultRouterConfig()
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = def.CORSOrigins
	}
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = def.RateLimitRequests
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = def.RateLimitWindow
	}
	return cfg
}

// NewRouter configures all HTTP routes. Unset fields of cfg take the
// DefaultRouterConfig values.
//
//nolint:gocritic // hugeParam: cfg is read once at startup
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	cfg = cfg.withDefaults()
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "ETag"},
		MaxAge:         86400,
	}))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compression)

	// Health endpoints are polled by orchestrators and are not rate limited.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(cfg))

		r.Get("/recommendations", h.Recommendations)
		r.Post("/recommendations", h.RecommendationsPost)
		r.Get("/genres", h.Genres)
		r.Get("/resolve", h.Resolve)
		r.Get("/movies/{id}/poster", h.MoviePoster)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "NOT_FOUND", "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}

// rateLimit returns a per-IP limiter answering with a JSON 429, or a no-op
// when rate limiting is disabled.
//
//nolint:gocritic // hugeParam: cfg is read once at startup
func rateLimit(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests, please slow down", nil)
		}),
	)
}
