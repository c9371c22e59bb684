// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/resolver"
)

// TitleResolver maps a query to a catalog position.
type TitleResolver interface {
	Resolve(query string) (resolver.Match, bool)
}

// GenreMatcher decides whether tag text matches any selected genre.
type GenreMatcher interface {
	MatchesAny(tagsText string, selected []string) bool
}

// Engine produces recommendations from immutable catalog artifacts.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog  *catalog.Catalog
	index    *catalog.SimilarityIndex
	resolver TitleResolver
	genres   GenreMatcher

	requestCount    atomic.Int64
	similarCount    atomic.Int64
	genreCount      atomic.Int64
	unresolvedCount atomic.Int64
	emptyCount      atomic.Int64
	canceledCount   atomic.Int64
}

// ErrMissingDependency is returned by NewEngine when a collaborator is nil.
var ErrMissingDependency = errors.New("recommend: missing dependency")

// NewEngine creates a recommendation engine over arts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(arts *catalog.Artifacts, res TitleResolver, genres GenreMatcher, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	switch {
	case arts == nil || arts.Catalog == nil || arts.Index == nil:
		return nil, fmt.Errorf("%w: artifacts", ErrMissingDependency)
	case res == nil:
		return nil, fmt.Errorf("%w: resolver", ErrMissingDependency)
	case genres == nil:
		return nil, fmt.Errorf("%w: genre matcher", ErrMissingDependency)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		catalog:  arts.Catalog,
		index:    arts.Index,
		resolver: res,
		genres:   genres,
	}, nil
}

// Recommend returns up to MaxResults movies for req. A non-blank query
// selects ModeSimilar; otherwise ModeGenre is used. No match and an empty
// filter result both yield an empty response. The only error is ctx's.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.canceledCount.Add(1)
		return nil, err
	}

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	var resp *Response
	if strings.TrimSpace(req.Query) != "" {
		e.similarCount.Add(1)
		resp = e.recommendSimilar(req)
	} else {
		e.genreCount.Add(1)
		resp = e.recommendByGenre(req)
	}

	if len(resp.Items) == 0 {
		e.emptyCount.Add(1)
	}

	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.Mode = resp.Mode.String()
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()

	e.logger.Debug().
		Str("request_id", req.RequestID).
		Str("mode", resp.Metadata.Mode).
		Int("genres", len(req.Genres)).
		Int("scanned", resp.Metadata.CandidatesScanned).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

type rankedCandidate struct {
	position int
	score    float64
}

// recommendSimilar ranks the resolved title's similarity row. The first
// sorted entry is skipped unconditionally: it is assumed to be the title
// itself because self-similarity is maximal in the index. An index that
// breaks that assumption will drop its true best neighbor instead.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendSimilar(req Request) *Response {
	resp := &Response{Items: []Result{}, Mode: ModeSimilar}

	match, ok := e.resolver.Resolve(req.Query)
	resp.MatchKind = match.Kind
	resp.Metadata.MatchKind = match.Kind.String()
	if !ok {
		e.unresolvedCount.Add(1)
		return resp
	}
	resp.MatchedTitle = match.Title

	row, ok := e.index.Row(match.Position)
	if !ok {
		resp.Metadata.SkippedOutOfRange++
		e.logger.Warn().
			Str("request_id", req.RequestID).
			Int("position", match.Position).
			Int("similarity_dim", e.index.Dim()).
			Msg("Resolved title has no similarity row")
		return resp
	}

	ranked := make([]rankedCandidate, len(row))
	for j, score := range row {
		ranked[j] = rankedCandidate{position: j, score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if len(ranked) <= 1 {
		return resp
	}
	window := ranked[1:min(len(ranked), 1+e.config.CandidateWindow)]

	for _, cand := range window {
		if len(resp.Items) >= e.config.MaxResults {
			break
		}
		resp.Metadata.CandidatesScanned++

		rec, ok := e.catalog.At(cand.position)
		if !ok {
			resp.Metadata.SkippedOutOfRange++
			continue
		}
		if !e.genres.MatchesAny(rec.Tags, req.Genres) {
			continue
		}
		resp.Items = append(resp.Items, toResult(rec))
	}

	return resp
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendByGenre(req Request) *Response {
	resp := &Response{Items: []Result{}, Mode: ModeGenre}

	for pos := 0; pos < e.catalog.Len() && len(resp.Items) < e.config.MaxResults; pos++ {
		resp.Metadata.CandidatesScanned++

		rec, _ := e.catalog.At(pos)
		if e.genres.MatchesAny(rec.Tags, req.Genres) {
			resp.Items = append(resp.Items, toResult(rec))
		}
	}

	return resp
}

func toResult(rec catalog.MovieRecord) Result {
	return Result{Title: rec.Title, PosterRef: rec.ID, TagsText: rec.Tags}
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:    e.requestCount.Load(),
		SimilarCount:    e.similarCount.Load(),
		GenreCount:      e.genreCount.Load(),
		UnresolvedCount: e.unresolvedCount.Load(),
		EmptyCount:      e.emptyCount.Load(),
		CanceledCount:   e.canceledCount.Load(),
	}
}
