// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// ClientConfig configures the metadata API client.
type ClientConfig struct {
	APIBase string
	APIKey  string

	// Language is sent as the language query parameter.
	Language string

	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64

	// Burst is the limiter burst size. Defaults to 1.
	Burst int
}

// Client fetches movie metadata from the remote API.
type Client struct {
	apiBase  string
	apiKey   string
	language string
	http     *http.Client
	limiter  *rate.Limiter
}

// movieDetails is the subset of the movie details response we read.
type movieDetails struct {
	PosterPath string `json:"poster_path"`
}

// NewClient creates a metadata client. A nil httpClient gets DefaultTimeout.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		apiBase:  strings.TrimRight(cfg.APIBase, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		http:     httpClient,
		limiter:  limiter,
	}
}

// FetchPosterPath returns the poster path for id, or ErrNoPoster when the
// movie exists but has none.
func (c *Client) FetchPosterPath(ctx context.Context, id int) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	reqURL := c.apiBase + "/movie/" + strconv.Itoa(id) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("movie details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("movie details request failed with status %d", resp.StatusCode)
	}

	var details movieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return "", fmt.Errorf("failed to decode movie details: %w", err)
	}
	if details.PosterPath == "" {
		return "", ErrNoPoster
	}
	return details.PosterPath, nil
}
