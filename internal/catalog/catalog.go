// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "errors"

var (
	// ErrEmptyCatalog is returned when the movie artifact contains no records.
	ErrEmptyCatalog = errors.New("catalog: no movie records")

	// ErrMalformedMatrix is returned when the similarity artifact is not square.
	ErrMalformedMatrix = errors.New("catalog: similarity matrix is not square")

	// ErrUnknownFormat is returned for an unsupported artifact format.
	ErrUnknownFormat = errors.New("catalog: unknown artifact format")
)

// MovieRecord is a single catalog entry.
type MovieRecord struct {
	// ID is the stable external identifier (used to look up posters).
	ID int `json:"movie_id" csv:"movie_id"`

	// Title is the display title.
	Title string `json:"title" csv:"title"`

	// Tags is free text with descriptive tokens, genre words included.
	Tags string `json:"tags" csv:"tags"`
}

// Catalog is an ordered, immutable sequence of movie records.
type Catalog struct {
	records []MovieRecord
}

// NewCatalog creates a catalog from records in position order.
// The slice is copied so later changes by the caller are not observed.
func NewCatalog(records []MovieRecord) *Catalog {
	owned := make([]MovieRecord, len(records))
	copy(owned, records)
	return &Catalog{records: owned}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the record at pos. ok is false when pos is out of range.
func (c *Catalog) At(pos int) (MovieRecord, bool) {
	if c == nil || pos < 0 || pos >= len(c.records) {
		return MovieRecord{}, false
	}
	return c.records[pos], true
}

// Titles returns the titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, c.Len())
	for i := range titles {
		titles[i] = c.records[i].Title
	}
	return titles
}
