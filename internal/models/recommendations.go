// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// RecommendationRequest is the POST /api/v1/recommendations body. GET
// requests are parsed into the same struct so both share validation.
//
// Genre labels are not checked against the taxonomy: an unknown label is a
// filter term that matches nothing.
type RecommendationRequest struct {
	Query   string   `json:"query"`
	Genres  []string `json:"genres" validate:"max=64"`
	Posters bool     `json:"posters"`
}

// RecommendationItem is one recommended movie.
type RecommendationItem struct {
	Title     string `json:"title"`
	PosterRef int    `json:"poster_ref"`
	Tags      string `json:"tags"`
	PosterURL string `json:"poster_url,omitempty"`
}

// RecommendationsData is the payload of a recommendation response.
//
// For title queries MatchedTitle and MatchKind echo what the query resolved
// to; MatchKind is "none" when the title was not found, in which case Items
// is empty.
type RecommendationsData struct {
	Mode              string               `json:"mode"`
	Query             string               `json:"query,omitempty"`
	Genres            []string             `json:"genres"`
	MatchedTitle      string               `json:"matched_title,omitempty"`
	MatchKind         string               `json:"match_kind,omitempty"`
	Count             int                  `json:"count"`
	Items             []RecommendationItem `json:"items"`
	CandidatesScanned int                  `json:"candidates_scanned"`
	SkippedOutOfRange int                  `json:"skipped_out_of_range,omitempty"`
}

// GenreInfo describes one canonical genre label.
type GenreInfo struct {
	Label    string   `json:"label"`
	Synonyms []string `json:"synonyms"`
}

// ResolveData reports how a free-text title resolved against the catalog.
type ResolveData struct {
	Query      string  `json:"query"`
	Resolved   bool    `json:"resolved"`
	Title      string  `json:"title,omitempty"`
	Position   int     `json:"position"`
	MatchKind  string  `json:"match_kind"`
	Similarity float64 `json:"similarity"`
}

// PosterData is the payload of GET /api/v1/movies/{id}/poster.
type PosterData struct {
	MovieID int    `json:"movie_id"`
	URL     string `json:"url"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status        string             `json:"status"`
	Ready         bool               `json:"ready"`
	Version       string             `json:"version,omitempty"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	Catalog       *CatalogHealth     `json:"catalog,omitempty"`
	Engine        *EngineHealth      `json:"engine,omitempty"`
	PosterBreaker string             `json:"poster_breaker,omitempty"`
	PosterCache   *PosterCacheHealth `json:"poster_cache,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// CatalogHealth summarizes the loaded artifacts. Degraded is true when the
// similarity matrix dimension differs from the catalog length.
type CatalogHealth struct {
	Movies        int  `json:"movies"`
	SimilarityDim int  `json:"similarity_dim"`
	Degraded      bool `json:"degraded"`
}

// EngineHealth holds the recommendation engine counters since startup.
type EngineHealth struct {
	Requests   int64 `json:"requests"`
	Similar    int64 `json:"similar"`
	Genre      int64 `json:"genre"`
	Unresolved int64 `json:"unresolved"`
	Empty      int64 `json:"empty"`
	Canceled   int64 `json:"canceled"`
}

// PosterCacheHealth holds the in-memory poster cache counters.
type PosterCacheHealth struct {
	Size      int   `json:"size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}
