// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/reelmatch/internal/poster"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  10 * time.Second,
		},
		Catalog: CatalogConfig{
			MoviesPath:     "/data/movies.json",
			SimilarityPath: "/data/similarity.json",
			Format:         "auto",
		},
		Recommend: RecommendConfig{
			MaxResults:       20,
			CandidateWindow:  399,
			MinSimilarity:    0.6,
			SimilarityMetric: "lcs",
		},
		Poster: PosterConfig{
			Enabled:        false, // opt-in, needs an API key
			APIBase:        "https://api.themoviedb.org/3",
			ImageBase:      "https://image.tmdb.org/t/p/w500",
			FallbackURL:    poster.FallbackURL,
			Language:       "en-US",
			Timeout:        10 * time.Second,
			RateLimit:      20,
			Burst:          10,
			CacheSize:      4096,
			CacheTTL:       24 * time.Hour,
			StoreTTL:       7 * 24 * time.Hour,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
			MaxConcurrency: 8,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in layers: defaults, then the first
// config file found, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys whose env values are comma-separated lists.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config keys.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	"movies_path":               "catalog.movies_path",
	"similarity_path":           "catalog.similarity_path",
	"catalog_format":            "catalog.format",
	"catalog_strict_dimensions": "catalog.strict_dimensions",

	"max_results":       "recommend.max_results",
	"candidate_window":  "recommend.candidate_window",
	"min_similarity":    "recommend.min_similarity",
	"similarity_metric": "recommend.similarity_metric",

	"poster_enabled":          "poster.enabled",
	"tmdb_api_base":           "poster.api_base",
	"tmdb_image_base":         "poster.image_base",
	"poster_fallback_url":     "poster.fallback_url",
	"tmdb_api_key":            "poster.api_key",
	"tmdb_language":           "poster.language",
	"poster_timeout":          "poster.timeout",
	"poster_rate_limit":       "poster.rate_limit_rps",
	"poster_burst":            "poster.burst",
	"poster_cache_size":       "poster.cache_size",
	"poster_cache_ttl":        "poster.cache_ttl",
	"poster_store_path":       "poster.store_path",
	"poster_store_ttl":        "poster.store_ttl",
	"poster_gc_interval":      "poster.gc_interval",
	"poster_gc_discard_ratio": "poster.gc_discard_ratio",
	"poster_max_concurrency":  "poster.max_concurrency",

	"poster_breaker_max_requests":  "poster.breaker.max_requests",
	"poster_breaker_interval":      "poster.breaker.interval",
	"poster_breaker_timeout":       "poster.breaker.timeout",
	"poster_breaker_min_requests":  "poster.breaker.min_requests",
	"poster_breaker_failure_ratio": "poster.breaker.failure_ratio",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables to config keys.
// Unknown variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
