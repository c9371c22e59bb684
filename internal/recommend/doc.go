// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements the movie recommendation engine.
//
// # Modes
//
// The engine serves each request in one of two mutually exclusive modes,
// chosen by whether the trimmed query is non-empty:
//
//   - Similar: the query is resolved to a catalog title. Every column of
//     that title's similarity row is stable-sorted by descending score, the
//     first sorted entry is skipped, and at most CandidateWindow (399) of the
//     following entries are scanned through the genre filter until
//     MaxResults (20) are collected.
//   - Genre: the catalog is scanned in stored order through the genre filter
//     until MaxResults are collected.
//
// An unresolved query, an unknown genre and a filter that removes every
// candidate all produce an empty response rather than an error.
//
// # Self-Exclusion
//
// The similar mode removes the queried title by skipping rank 0, not by
// comparing positions. This relies on each title being its own most similar
// entry. If the index violates that, the skipped entry is a different title
// and the queried title may appear in its own results.
//
// # Thread Safety
//
// The engine holds only immutable artifacts and atomic counters, so any
// number of goroutines may call Recommend concurrently.
//
// # Usage
//
//	engine, err := recommend.NewEngine(arts, res, genre.Default(), recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Query:  "inception",
//	    Genres: []string{"Thriller"},
//	})
package recommend
