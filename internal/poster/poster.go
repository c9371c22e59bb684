// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package poster turns catalog movie ids into poster image URLs.
//
// Every Resolver returns a usable URL: when metadata cannot be fetched or a
// movie has no poster, the fixed placeholder FallbackURL is returned instead
// of an error. The recommendation engine never imports this package; callers
// resolve each result's poster reference after ranking.
//
// The Service resolver checks, in order, an in-memory LRU cache, an optional
// Badger-backed persistent store and finally the remote metadata API through
// a rate limiter and circuit breaker.
package poster

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the metadata API root.
	DefaultAPIBase = "https://api.themoviedb.org/3"

	// DefaultImageBase is prefixed to a movie's poster path.
	DefaultImageBase = "https://image.tmdb.org/t/p/w500/"

	// FallbackURL is returned whenever no poster can be resolved.
	FallbackURL = "https://via.placeholder.com/500x750.png?text=No+Poster"

	// DefaultTimeout bounds a single metadata request.
	DefaultTimeout = 10 * time.Second
)

// ErrNoPoster is returned by a Fetcher when the movie has no poster path.
var ErrNoPoster = errors.New("poster: movie has no poster path")

// Resolver returns a display URL for a movie id. It never fails.
type Resolver interface {
	Resolve(ctx context.Context, id int) string
}

// Fetcher retrieves the poster path for a movie id from a remote source.
type Fetcher interface {
	FetchPosterPath(ctx context.Context, id int) (string, error)
}

// Static resolves every id to the same URL. It serves when posters are disabled.
type Static string

// Resolve returns s.
func (s Static) Resolve(context.Context, int) string {
	return string(s)
}

// Fallback is a Resolver that always returns FallbackURL.
var Fallback Resolver = Static(FallbackURL)

// ImageURL joins an image base and a poster path with exactly one slash.
func ImageURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
