// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

const (
	// DefaultMaxResults is the result cap for both modes.
	DefaultMaxResults = 20

	// DefaultCandidateWindow is how many ranked candidates ModeSimilar
	// examines after the top entry is skipped.
	DefaultCandidateWindow = 399
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// MaxResults caps the number of items returned.
	MaxResults int `json:"max_results"`

	// CandidateWindow bounds the ranked candidates scanned in ModeSimilar.
	CandidateWindow int `json:"candidate_window"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:      DefaultMaxResults,
		CandidateWindow: DefaultCandidateWindow,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max_results must be positive, got %d", c.MaxResults))
	}
	if c.CandidateWindow <= 0 {
		errs = append(errs, fmt.Errorf("candidate_window must be positive, got %d", c.CandidateWindow))
	}

	return errors.Join(errs...)
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
