// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"sync"
)

// Artifacts bundles a catalog with its similarity index.
type Artifacts struct {
	Catalog *Catalog
	Index   *SimilarityIndex
}

// Mismatch reports whether the similarity dimension differs from the catalog length.
func (a *Artifacts) Mismatch() bool {
	return a.Catalog.Len() != a.Index.Dim()
}

// Stats summarizes the loaded artifacts for logging and health checks.
type Stats struct {
	Movies        int  `json:"movies"`
	SimilarityDim int  `json:"similarity_dim"`
	Degraded      bool `json:"degraded"`
}

// Stats returns a summary of the artifacts.
func (a *Artifacts) Stats() Stats {
	return Stats{
		Movies:        a.Catalog.Len(),
		SimilarityDim: a.Index.Dim(),
		Degraded:      a.Mismatch(),
	}
}

// Store is a load-once holder for artifacts. Readers block in Wait until the
// first Load completes; later Load calls are no-ops returning the first result.
type Store struct {
	once      sync.Once
	ready     chan struct{}
	artifacts *Artifacts
	err       error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{ready: make(chan struct{})}
}

// LoadFunc produces artifacts.
type LoadFunc func(ctx context.Context) (*Artifacts, error)

// Load runs fn exactly once and publishes its result.
func (s *Store) Load(ctx context.Context, fn LoadFunc) (*Artifacts, error) {
	s.once.Do(func() {
		s.artifacts, s.err = fn(ctx)
		close(s.ready)
	})
	return s.artifacts, s.err
}

// Wait blocks until Load has completed or ctx is done.
func (s *Store) Wait(ctx context.Context) (*Artifacts, error) {
	select {
	case <-s.ready:
		return s.artifacts, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether artifacts were loaded successfully.
func (s *Store) Ready() bool {
	select {
	case <-s.ready:
		return s.err == nil
	default:
		return false
	}
}

// Artifacts returns the loaded artifacts, or nil before a successful Load.
func (s *Store) Artifacts() *Artifacts {
	if !s.Ready() {
		return nil
	}
	return s.artifacts
}

// Err returns the load error, or nil if Load has not completed or succeeded.
func (s *Store) Err() error {
	select {
	case <-s.ready:
		return s.err
	default:
		return nil
	}
}
