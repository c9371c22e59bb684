// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// emptyQueryMessage is shown when neither a title nor a genre was given.
const emptyQueryMessage = "Please type a movie name or select a genre first"

// Recommendations handles GET /api/v1/recommendations.
//
// Query parameters: q (title), genres (comma-separated or repeated), posters (bool).
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	posters, err := getBoolParam(r, "posters", false)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	req := models.RecommendationRequest{
		Query:   r.URL.Query().Get("q"),
		Genres:  parseGenreList(r.URL.Query()["genres"]),
		Posters: posters,
	}
	h.serveRecommendations(w, r, &req, start)
}

// RecommendationsPost handles POST /api/v1/recommendations.
func (h *Handler) RecommendationsPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object", err)
		return
	}
	h.serveRecommendations(w, r, &req, start)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, req *models.RecommendationRequest, start time.Time) {
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	if strings.TrimSpace(req.Query) == "" && len(req.Genres) == 0 {
		respondError(w, r, http.StatusBadRequest, "EMPTY_QUERY", emptyQueryMessage, nil)
		return
	}

	backend := h.currentBackend()
	if backend == nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Catalog is still loading", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	resp, err := backend.Engine.Recommend(ctx, recommend.Request{
		Query:     req.Query,
		Genres:    req.Genres,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			respondError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "Recommendation timed out", err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
		return
	}

	items := make([]models.RecommendationItem, len(resp.Items))
	ids := make([]int, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = models.RecommendationItem{
			Title:     item.Title,
			PosterRef: item.PosterRef,
			Tags:      item.TagsText,
		}
		ids[i] = item.PosterRef
	}
	if req.Posters && len(ids) > 0 {
		urls := poster.ResolveAll(ctx, h.posters, ids, h.cfg.PosterConcurrency)
		for i := range items {
			items[i].PosterURL = urls[i]
		}
	}

	data := models.RecommendationsData{
		Mode:              resp.Mode.String(),
		Query:             req.Query,
		Genres:            req.Genres,
		MatchedTitle:      resp.MatchedTitle,
		Count:             len(items),
		Items:             items,
		CandidatesScanned: resp.Metadata.CandidatesScanned,
		SkippedOutOfRange: resp.Metadata.SkippedOutOfRange,
	}
	if data.Genres == nil {
		data.Genres = []string{}
	}
	matchKind := ""
	if resp.Mode == recommend.ModeSimilar {
		matchKind = resp.MatchKind.String()
		data.MatchKind = matchKind
	}

	metrics.RecordRecommendation(data.Mode, matchKind, len(items), time.Since(start))

	logging.Ctx(r.Context()).Debug().
		Str("mode", data.Mode).
		Str("query", sanitizeLogValue(req.Query)).
		Str("match_kind", matchKind).
		Strs("unknown_genres", h.unknownGenres(req.Genres)).
		Int("results", len(items)).
		Msg("Recommendations served")

	respondSuccess(w, r, data, start)
}

// unknownGenres returns the labels outside the taxonomy. They are kept in the
// filter, where they match nothing.
func (h *Handler) unknownGenres(labels []string) []string {
	var unknown []string
	for _, label := range labels {
		if !h.genres.Has(label) {
			unknown = append(unknown, sanitizeLogValue(label))
		}
	}
	return unknown
}
