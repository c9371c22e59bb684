// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Poster    PosterConfig    `koanf:"poster"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds handler work. It must be below WriteTimeout so
	// the 504 response can still be written.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig locates the precomputed catalog artifacts.
type CatalogConfig struct {
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`

	// Format is auto, json or csv. Auto picks by file extension.
	Format string `koanf:"format"`

	// StrictDimensions refuses to start when the similarity matrix size
	// differs from the catalog length.
	StrictDimensions bool `koanf:"strict_dimensions"`
}

// RecommendConfig tunes the recommendation engine and title resolver.
type RecommendConfig struct {
	MaxResults       int     `koanf:"max_results"`
	CandidateWindow  int     `koanf:"candidate_window"`
	MinSimilarity    float64 `koanf:"min_similarity"`
	SimilarityMetric string  `koanf:"similarity_metric"`
}

// PosterConfig configures the optional TMDB poster resolver.
type PosterConfig struct {
	Enabled     bool          `koanf:"enabled"`
	APIBase     string        `koanf:"api_base"`
	ImageBase   string        `koanf:"image_base"`
	FallbackURL string        `koanf:"fallback_url"`
	APIKey      string        `koanf:"api_key"`
	Language    string        `koanf:"language"`
	Timeout     time.Duration `koanf:"timeout"`

	// RateLimit is the sustained request rate to the poster API per second.
	RateLimit float64 `koanf:"rate_limit_rps"`
	Burst     int     `koanf:"burst"`

	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// StorePath enables the persistent BadgerDB cache when set.
	StorePath      string        `koanf:"store_path"`
	StoreTTL       time.Duration `koanf:"store_ttl"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`

	// MaxConcurrency bounds parallel lookups for one recommendation response.
	MaxConcurrency int `koanf:"max_concurrency"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the poster API.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
