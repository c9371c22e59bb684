// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "fmt"

// SimilarityIndex is a square matrix of pairwise similarity scores.
// Score(i, j) is the similarity of position i to position j; higher is more
// similar. Scores are neither normalized nor required to be symmetric.
type SimilarityIndex struct {
	rows [][]float64
}

// NewSimilarityIndex creates an index from rows. Every row must have exactly
// len(rows) columns. The rows are copied.
func NewSimilarityIndex(rows [][]float64) (*SimilarityIndex, error) {
	n := len(rows)
	owned := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedMatrix, i, len(row), n)
		}
		owned[i] = append([]float64(nil), row...)
	}
	return &SimilarityIndex{rows: owned}, nil
}

// Dim returns the matrix dimension.
func (s *SimilarityIndex) Dim() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Score returns the similarity of i to j. ok is false if either index is out of range.
func (s *SimilarityIndex) Score(i, j int) (float64, bool) {
	n := s.Dim()
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0, false
	}
	return s.rows[i][j], true
}

// Row returns the scores of position i against every position.
// The returned slice is shared and must not be modified.
func (s *SimilarityIndex) Row(i int) ([]float64, bool) {
	if i < 0 || i >= s.Dim() {
		return nil, false
	}
	return s.rows[i], true
}
