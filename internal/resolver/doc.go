// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package resolver maps a user's free-text query to a catalog position.
//
// Resolution runs in two steps over lowercased titles precomputed in New:
//
//  1. Exact: the trimmed, lowercased query equals a title. The first
//     occurrence wins when titles repeat.
//  2. Approximate: the title with the highest similarity ratio at or above
//     Config.MinSimilarity (0.6 by default). Ties keep the earliest title.
//
// The default ratio is 2*M/T where M is the longest common subsequence
// length (github.com/hbollon/go-edlib) and T is the combined rune length of
// both strings. Levenshtein and Jaro-Winkler similarities are available as
// alternatives.
//
// An unresolved query is reported through the boolean return, never an error.
//
// Example:
//
//	r, err := resolver.New(cat.Titles(), resolver.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if m, ok := r.Resolve("incepton"); ok {
//	    fmt.Println(m.Title, m.Kind) // Inception fuzzy
//	}
package resolver
