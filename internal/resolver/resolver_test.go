// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package resolver

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func newTestResolver(t *testing.T, titles []string, cfg Config) *Resolver {
	t.Helper()
	r, err := New(titles, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestResolve(t *testing.T) {
	t.Parallel()

	titles := []string{"Inception", "Up", "Interstellar", "The Dark Knight", "Inception"}
	r := newTestResolver(t, titles, DefaultConfig())

	tests := []struct {
		name     string
		query    string
		wantOK   bool
		wantPos  int
		wantKind MatchKind
	}{
		{"exact", "Inception", true, 0, MatchExact},
		{"exact case and space", "  iNcEpTiOn ", true, 0, MatchExact},
		{"exact short", "up", true, 1, MatchExact},
		{"duplicate keeps first", "inception", true, 0, MatchExact},
		{"typo", "incepton", true, 0, MatchFuzzy},
		{"typo dark knight", "the dark night", true, 3, MatchFuzzy},
		{"unrelated", "zzzzzz", false, 0, MatchNone},
		{"empty", "", false, 0, MatchNone},
		{"whitespace", "   ", false, 0, MatchNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := r.Resolve(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if m.Kind != tt.wantKind {
				t.Errorf("Resolve(%q) kind = %v, want %v", tt.query, m.Kind, tt.wantKind)
			}
			if ok && m.Position != tt.wantPos {
				t.Errorf("Resolve(%q) position = %d, want %d", tt.query, m.Position, tt.wantPos)
			}
		})
	}
}

func TestResolve_TiesKeepFirstOccurrence(t *testing.T) {
	t.Parallel()

	// "abcx" and "abcy" are equally close to "abcz".
	r := newTestResolver(t, []string{"abcx", "abcy"}, DefaultConfig())
	m, ok := r.Resolve("abcz")
	if !ok || m.Position != 0 {
		t.Errorf("Resolve(abcz) = %+v, %v; want position 0", m, ok)
	}
}

func TestResolve_CutoffIsInclusive(t *testing.T) {
	t.Parallel()

	// LCS("abc", "abxyz") = 2, ratio = 4/8 = 0.5
	r := newTestResolver(t, []string{"abxyz"}, Config{MinSimilarity: 0.5})
	if _, ok := r.Resolve("abc"); !ok {
		t.Error("ratio equal to cutoff should resolve")
	}

	r = newTestResolver(t, []string{"abxyz"}, Config{MinSimilarity: 0.51})
	if _, ok := r.Resolve("abc"); ok {
		t.Error("ratio below cutoff should not resolve")
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, nil, DefaultConfig())
	if _, ok := r.Resolve("anything"); ok {
		t.Error("empty resolver should never match")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestResolve_AlternativeMetrics(t *testing.T) {
	t.Parallel()

	titles := []string{"Inception", "Up"}
	for _, metric := range []Metric{MetricLevenshtein, MetricJaroWinkler} {
		metric := metric
		t.Run(string(metric), func(t *testing.T) {
			t.Parallel()
			r := newTestResolver(t, titles, Config{MinSimilarity: 0.6, Metric: metric})
			m, ok := r.Resolve("incepton")
			if !ok || m.Position != 0 || m.Kind != MatchFuzzy {
				t.Errorf("Resolve(incepton) = %+v, %v", m, ok)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "", 0},
		{"abc", "abc", 1},
		{"incepton", "inception", 16.0 / 17.0},
		{"abc", "xyz", 0},
		{"héllo", "hello", 0.8},
		{"bacc", "adcaac", 0.6},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"empty metric", Config{MinSimilarity: 0.6}, false},
		{"negative cutoff", Config{MinSimilarity: -0.1}, true},
		{"cutoff above one", Config{MinSimilarity: 1.1}, true},
		{"unknown metric", Config{MinSimilarity: 0.6, Metric: "soundex"}, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}

	if _, err := New([]string{"a"}, Config{MinSimilarity: 2}, zerolog.Nop()); err == nil {
		t.Error("New should reject invalid config")
	}
}

func TestMatchKind_String(t *testing.T) {
	t.Parallel()

	if MatchExact.String() != "exact" || MatchFuzzy.String() != "fuzzy" || MatchNone.String() != "none" {
		t.Error("unexpected MatchKind names")
	}
}
