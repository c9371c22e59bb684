// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
)

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validCatalogFormats = map[string]bool{
	"auto": true, "json": true, "csv": true,
}

var validSimilarityMetrics = map[string]bool{
	"lcs": true, "levenshtein": true, "jaro-winkler": true,
}

// Validate checks every section and returns all problems found, joined.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateCatalog(),
		c.validateRecommend(),
		c.validatePoster(),
		c.validateSecurity(),
		c.validateLogging(),
	)
}

func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive"))
	}
	if c.Server.RequestTimeout <= 0 || c.Server.RequestTimeout >= c.Server.WriteTimeout {
		errs = append(errs, fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive and below HTTP_WRITE_TIMEOUT (%s), got %s",
			c.Server.WriteTimeout, c.Server.RequestTimeout))
	}
	return errors.Join(errs...)
}

func (c *Config) validateCatalog() error {
	var errs []error
	if c.Catalog.MoviesPath == "" {
		errs = append(errs, fmt.Errorf("MOVIES_PATH is required"))
	}
	if c.Catalog.SimilarityPath == "" {
		errs = append(errs, fmt.Errorf("SIMILARITY_PATH is required"))
	}
	if c.Catalog.Format != "" && !validCatalogFormats[strings.ToLower(c.Catalog.Format)] {
		errs = append(errs, fmt.Errorf("CATALOG_FORMAT must be one of: auto, json, csv"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateRecommend() error {
	var errs []error
	if c.Recommend.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("MAX_RESULTS must be positive, got %d", c.Recommend.MaxResults))
	}
	if c.Recommend.CandidateWindow <= 0 {
		errs = append(errs, fmt.Errorf("CANDIDATE_WINDOW must be positive, got %d", c.Recommend.CandidateWindow))
	}
	if c.Recommend.MinSimilarity < 0 || c.Recommend.MinSimilarity > 1 {
		errs = append(errs, fmt.Errorf("MIN_SIMILARITY must be in [0, 1], got %v", c.Recommend.MinSimilarity))
	}
	if !validSimilarityMetrics[c.Recommend.SimilarityMetric] {
		errs = append(errs, fmt.Errorf("SIMILARITY_METRIC must be one of: lcs, levenshtein, jaro-winkler"))
	}
	return errors.Join(errs...)
}

// validatePoster validates poster settings (only if enabled)
func (c *Config) validatePoster() error {
	p := c.Poster
	if !p.Enabled {
		return nil
	}

	var errs []error
	if p.APIKey == "" {
		errs = append(errs, fmt.Errorf("TMDB_API_KEY is required when POSTER_ENABLED=true"))
	}
	if err := validateHTTPURL(p.APIBase, "TMDB_API_BASE"); err != nil {
		errs = append(errs, err)
	}
	if err := validateHTTPURL(p.ImageBase, "TMDB_IMAGE_BASE"); err != nil {
		errs = append(errs, err)
	}
	if p.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("POSTER_TIMEOUT must be positive"))
	}
	if p.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("POSTER_RATE_LIMIT must not be negative"))
	}
	if p.MaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("POSTER_MAX_CONCURRENCY must be positive"))
	}
	if p.GCDiscardRatio <= 0 || p.GCDiscardRatio >= 1 {
		errs = append(errs, fmt.Errorf("POSTER_GC_DISCARD_RATIO must be in (0, 1), got %v", p.GCDiscardRatio))
	}
	if p.Breaker.FailureRatio <= 0 || p.Breaker.FailureRatio > 1 {
		errs = append(errs, fmt.Errorf("POSTER_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", p.Breaker.FailureRatio))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	var errs []error
	if c.Security.RateLimitReqs <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs))
	}
	if c.Security.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

// ShouldWarnAboutCORS reports whether CORS allows every origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	var errs []error
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled"))
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, console"))
	}
	return errors.Join(errs...)
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL without a
// query string. A path is allowed since API bases carry a version segment.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
