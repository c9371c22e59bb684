// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

// HealthLive reports that the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, models.HealthStatus{
		Status:        "alive",
		Ready:         h.currentBackend() != nil,
		Version:       h.cfg.Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}, start)
}

// HealthReady reports whether recommendations can be served.
//
// 200 with status "ready", or "degraded" when the similarity matrix does not
// match the catalog length; 503 with status "loading" or "failed" otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Version:       h.cfg.Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
	if h.breaker != nil {
		health.PosterBreaker = h.breaker()
	}
	if h.cache != nil {
		cs := h.cache()
		health.PosterCache = &models.PosterCacheHealth{
			Size:      cs.Size,
			Hits:      cs.Hits,
			Misses:    cs.Misses,
			Evictions: cs.Evictions,
		}
	}

	backend := h.currentBackend()
	if backend == nil {
		status := http.StatusServiceUnavailable
		health.Status = "loading"
		if err := h.store.Err(); err != nil {
			health.Status = "failed"
			health.Error = err.Error()
		}
		respondJSON(w, status, &models.APIResponse{
			Status: "error",
			Data:   health,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
				RequestID: logging.RequestIDFromContext(r.Context()),
			},
			Error: &models.APIError{Code: "NOT_READY", Message: "Catalog is not loaded"},
		})
		return
	}

	stats := backend.Artifacts.Stats()
	health.Ready = true
	health.Status = "ready"
	if stats.Degraded {
		health.Status = "degraded"
	}
	health.Catalog = &models.CatalogHealth{
		Movies:        stats.Movies,
		SimilarityDim: stats.SimilarityDim,
		Degraded:      stats.Degraded,
	}
	em := backend.Engine.GetMetrics()
	health.Engine = &models.EngineHealth{
		Requests:   em.RequestCount,
		Similar:    em.SimilarCount,
		Genre:      em.GenreCount,
		Unresolved: em.UnresolvedCount,
		Empty:      em.EmptyCount,
		Canceled:   em.CanceledCount,
	}

	respondSuccess(w, r, health, start)
}
