// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// ValueLogCollector runs one garbage collection pass, reporting whether
// anything was rewritten. Satisfied by *poster.Store.
type ValueLogCollector interface {
	RunGC(discardRatio float64) (bool, error)
}

// PosterStoreGCService periodically reclaims space in the persistent
// poster store. GC errors are logged and counted, never fatal.
type PosterStoreGCService struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewPosterStoreGCService creates the GC loop. A non-positive interval
// defaults to 10 minutes; a ratio outside (0, 1) defaults to 0.5.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPosterStoreGCService(store ValueLogCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *PosterStoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &PosterStoreGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "poster-store-gc").Logger(),
		name:         "poster-store-gc",
	}
}

// Serve implements suture.Service.
func (s *PosterStoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *PosterStoreGCService) runOnce() {
	rewritten, err := s.store.RunGC(s.discardRatio)
	switch {
	case err != nil:
		metrics.RecordPosterStoreGC("error")
		s.logger.Warn().Err(err).Msg("Poster store GC failed")
	case rewritten:
		metrics.RecordPosterStoreGC("rewritten")
		s.logger.Debug().Msg("Poster store value log rewritten")
	default:
		metrics.RecordPosterStoreGC("noop")
	}
}

// String implements fmt.Stringer.
func (s *PosterStoreGCService) String() string {
	return s.name
}
