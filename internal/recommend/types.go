// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/resolver"
)

// Mode identifies how a request is served.
type Mode int

const (
	// ModeSimilar ranks candidates by similarity to a resolved title.
	ModeSimilar Mode = iota

	// ModeGenre scans the catalog in stored order, filtered by genre.
	ModeGenre
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSimilar:
		return "similar"
	case ModeGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// Request is a single recommendation query.
type Request struct {
	// Query is a free-text movie title. Blank selects ModeGenre.
	Query string `json:"query"`

	// Genres are canonical genre labels. Unknown labels never match.
	Genres []string `json:"genres,omitempty"`

	// RequestID is used for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Result is one recommended movie.
type Result struct {
	// Title is the display title.
	Title string `json:"title"`

	// PosterRef is the catalog movie id, resolved to an image by the caller.
	PosterRef int `json:"poster_ref"`

	// TagsText is the movie's tag text.
	TagsText string `json:"tags"`
}

// Response contains an ordered list of results.
type Response struct {
	// Items are ordered best first (ModeSimilar) or in catalog order (ModeGenre).
	Items []Result `json:"items"`

	// Mode is the mode used to serve the request.
	Mode Mode `json:"-"`

	// MatchedTitle is the catalog title the query resolved to, if any.
	MatchedTitle string `json:"matched_title,omitempty"`

	// MatchKind is how the query resolved (exact, fuzzy, none).
	MatchKind resolver.MatchKind `json:"-"`

	// Metadata contains diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains diagnostic information about a request.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// Mode is the mode name.
	Mode string `json:"mode"`

	// MatchKind is the resolution kind name for ModeSimilar.
	MatchKind string `json:"match_kind,omitempty"`

	// CandidatesScanned is the number of candidates examined.
	CandidatesScanned int `json:"candidates_scanned"`

	// SkippedOutOfRange counts candidates dropped by bounds checks.
	SkippedOutOfRange int `json:"skipped_out_of_range,omitempty"`

	// LatencyMS is the time spent producing the response.
	LatencyMS int64 `json:"latency_ms"`

	Timestamp time.Time `json:"timestamp"`
}

// Metrics contains engine counters.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// SimilarCount is the number of ModeSimilar requests.
	SimilarCount int64 `json:"similar_count"`

	// GenreCount is the number of ModeGenre requests.
	GenreCount int64 `json:"genre_count"`

	// UnresolvedCount is the number of queries that matched no title.
	UnresolvedCount int64 `json:"unresolved_count"`

	// EmptyCount is the number of responses with no items.
	EmptyCount int64 `json:"empty_count"`

	// CanceledCount is the number of requests abandoned by their context.
	CanceledCount int64 `json:"canceled_count"`
}
