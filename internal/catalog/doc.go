// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog holds the precomputed recommendation artifacts: the ordered
// movie catalog and the item-to-item similarity matrix.
//
// # Data Model
//
// A Catalog is an ordered, read-only sequence of MovieRecord values. A record's
// position (0..N-1) is the join key into the SimilarityIndex, whose row and
// column order matches the catalog order.
//
// Both values are loaded once at process start by a Loader and never mutated
// afterwards, so they can be shared by any number of concurrent readers
// without locking.
//
// # Degraded Mode
//
// When the similarity dimension does not equal the catalog length the
// artifacts are still served. Artifacts.Mismatch reports the condition, a
// warning is logged at load time, and every accessor in this package is
// bounds-checked so that no lookup can index out of range.
//
// # Artifact Formats
//
// The loader understands two layouts:
//
//   - json: movies as an array of {"movie_id","title","tags"} objects and the
//     similarity matrix as an array of arrays of numbers
//   - csv: movies as a headed CSV (movie_id,title,tags) and the similarity
//     matrix as one comma-separated row of numbers per line
//
// Format "auto" picks a layout per file from its extension.
package catalog
