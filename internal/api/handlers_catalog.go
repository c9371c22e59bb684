// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/resolver"
)

// Genres handles GET /api/v1/genres. Labels are returned in display order.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries := h.genres.Entries()
	genres := make([]models.GenreInfo, len(entries))
	for i, e := range entries {
		genres[i] = models.GenreInfo{Label: e.Label, Synonyms: e.Synonyms}
	}
	respondSuccess(w, r, genres, start)
}

// Resolve handles GET /api/v1/resolve?q=<title>.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "q is required", nil)
		return
	}

	backend := h.currentBackend()
	if backend == nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Catalog is still loading", nil)
		return
	}

	match, ok := backend.Resolver.Resolve(query)
	data := models.ResolveData{
		Query:     query,
		Resolved:  ok,
		Position:  -1,
		MatchKind: resolver.MatchNone.String(),
	}
	if ok {
		data.Title = match.Title
		data.Position = match.Position
		data.MatchKind = match.Kind.String()
		data.Similarity = match.Similarity
	}
	respondSuccess(w, r, data, start)
}

// MoviePoster handles GET /api/v1/movies/{id}/poster. Lookup failures
// resolve to the fallback image, so any valid id yields 200.
func (h *Handler) MoviePoster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a positive integer", nil)
		return
	}

	respondSuccess(w, r, models.PosterData{
		MovieID: id,
		URL:     h.posters.Resolve(r.Context(), id),
	}, start)
}
