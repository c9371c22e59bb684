// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package resolver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog"
)

// Metric selects the string similarity function used for approximate matches.
type Metric string

const (
	// MetricLCS is 2*LCS/(len(a)+len(b)) over runes.
	MetricLCS Metric = "lcs"

	// MetricLevenshtein is 1 - distance/max(len(a), len(b)).
	MetricLevenshtein Metric = "levenshtein"

	// MetricJaroWinkler is the Jaro-Winkler similarity.
	MetricJaroWinkler Metric = "jaro-winkler"
)

// DefaultMinSimilarity is the lowest ratio accepted as an approximate match.
const DefaultMinSimilarity = 0.6

// Config configures a Resolver.
type Config struct {
	// MinSimilarity is the inclusive cutoff in [0, 1].
	MinSimilarity float64

	// Metric defaults to MetricLCS.
	Metric Metric
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{MinSimilarity: DefaultMinSimilarity, Metric: MetricLCS}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("min similarity must be in [0, 1], got %v", c.MinSimilarity)
	}
	switch c.Metric {
	case MetricLCS, MetricLevenshtein, MetricJaroWinkler, "":
		return nil
	default:
		return fmt.Errorf("unknown similarity metric %q", c.Metric)
	}
}

// MatchKind describes how a query was resolved.
type MatchKind int

const (
	// MatchNone means the query did not resolve.
	MatchNone MatchKind = iota

	// MatchExact means the normalized query equals a normalized title.
	MatchExact

	// MatchFuzzy means the best approximate match met the cutoff.
	MatchFuzzy
)

// String returns the lowercase name of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is a resolved title.
type Match struct {
	Position   int
	Title      string
	Kind       MatchKind
	Similarity float64
}

// Resolver maps free-text queries to catalog positions.
// It is safe for concurrent use; all state is built in New.
type Resolver struct {
	cfg    Config
	titles []string // original titles, catalog order
	lower  []string // lowercased titles, catalog order
	runes  []int    // rune length of each lowercased title
	exact  map[string]int
	ratio  func(a, b string) float64
	logger zerolog.Logger
}

// New builds a resolver over titles in catalog order.
func New(titles []string, cfg Config, logger zerolog.Logger) (*Resolver, error) {
	if cfg.Metric == "" {
		cfg.Metric = MetricLCS
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}

	r := &Resolver{
		cfg:    cfg,
		titles: append([]string(nil), titles...),
		lower:  make([]string, len(titles)),
		runes:  make([]int, len(titles)),
		exact:  make(map[string]int, len(titles)),
		ratio:  ratioFunc(cfg.Metric),
		logger: logger.With().Str("component", "resolver").Logger(),
	}
	for i, title := range titles {
		lt := strings.ToLower(title)
		r.lower[i] = lt
		r.runes[i] = utf8.RuneCountInString(lt)
		if _, dup := r.exact[lt]; !dup {
			r.exact[lt] = i
		}
	}
	return r, nil
}

// Resolve returns the catalog position for query. ok is false when nothing
// matches, which is a normal outcome rather than an error.
func (r *Resolver) Resolve(query string) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{Kind: MatchNone}, false
	}

	if pos, ok := r.exact[q]; ok {
		return Match{Position: pos, Title: r.titles[pos], Kind: MatchExact, Similarity: 1}, true
	}

	best, bestScore := -1, -1.0
	qLen := utf8.RuneCountInString(q)
	for i, lt := range r.lower {
		if r.cfg.Metric == MetricLCS {
			// 2*min(la,lb)/(la+lb) bounds the LCS ratio from above.
			bound := 2 * float64(min(qLen, r.runes[i])) / float64(qLen+r.runes[i])
			if bound < r.cfg.MinSimilarity || bound <= bestScore {
				continue
			}
		}
		s := r.ratio(q, lt)
		if s >= r.cfg.MinSimilarity && s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 {
		r.logger.Debug().Str("query", q).Msg("No title resolved")
		return Match{Kind: MatchNone}, false
	}

	r.logger.Debug().
		Str("query", q).
		Str("title", r.titles[best]).
		Float64("similarity", bestScore).
		Msg("Resolved title approximately")

	return Match{Position: best, Title: r.titles[best], Kind: MatchFuzzy, Similarity: bestScore}, true
}

// Len returns the number of titles.
func (r *Resolver) Len() int {
	return len(r.titles)
}

// Normalize trims surrounding whitespace and lowercases.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Ratio is the LCS similarity ratio 2*M/T, where M is the longest common
// subsequence length and T the combined rune length. Two empty strings have
// ratio 1.
//
// M counts every common subsequence character, so Ratio is never lower than
// a Ratcliff/Obershelp ratio, which only counts contiguous matching blocks.
// It can accept pairs that ratio rejects: "bacc" and "adcaac" score 0.6
// here and 0.4 there.
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

func ratioFunc(m Metric) func(a, b string) float64 {
	switch m {
	case MetricLevenshtein:
		return func(a, b string) float64 {
			s, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
			if err != nil {
				return 0
			}
			return float64(s)
		}
	case MetricJaroWinkler:
		return func(a, b string) float64 {
			return float64(edlib.JaroWinklerSimilarity(a, b))
		}
	default:
		return Ratio
	}
}
