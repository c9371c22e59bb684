// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package genre defines the built-in genre taxonomy and the tag-text matcher
// used to filter recommendation candidates.
//
// Matching is deliberately permissive: a synonym matches a movie's tag text if
// it equals one of the text's alphanumeric tokens or if it occurs anywhere in
// the normalized text as a substring. "war" therefore also matches "software".
package genre

import "strings"

// Label is a canonical genre name shown to users.
type Label = string

// Entry pairs a canonical label with its lowercase synonym tokens.
type Entry struct {
	Label    Label    `json:"label"`
	Synonyms []string `json:"synonyms"`
}

var defaultEntries = []Entry{
	{"Action", []string{"action"}},
	{"Adventure", []string{"adventure"}},
	{"Animation", []string{"animation", "animated"}},
	{"Comedy", []string{"comedy", "comedies"}},
	{"Crime", []string{"crime"}},
	{"Drama", []string{"drama", "dramatic"}},
	{"Family", []string{"family"}},
	{"Fantasy", []string{"fantasy"}},
	{"History", []string{"history", "historical"}},
	{"Horror", []string{"horror"}},
	{"Music", []string{"music", "musical"}},
	{"Mystery", []string{"mystery"}},
	{"Romance", []string{"romance", "romantic"}},
	{"Sci-Fi", []string{"sci", "scifi", "sci-fi", "science", "sciencefiction", "science_fiction"}},
	{"Thriller", []string{"thriller", "suspense"}},
	{"War", []string{"war"}},
	{"Western", []string{"western"}},
}

// Taxonomy maps canonical labels to synonyms. It is immutable.
type Taxonomy struct {
	entries []Entry
	index   map[Label][]string
}

var defaultTaxonomy = New(defaultEntries)

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// New creates a taxonomy from entries in display order.
func New(entries []Entry) *Taxonomy {
	t := &Taxonomy{
		entries: make([]Entry, len(entries)),
		index:   make(map[Label][]string, len(entries)),
	}
	for i, e := range entries {
		syn := append([]string(nil), e.Synonyms...)
		t.entries[i] = Entry{Label: e.Label, Synonyms: syn}
		t.index[e.Label] = syn
	}
	return t
}

// Labels returns the canonical labels in display order.
func (t *Taxonomy) Labels() []Label {
	labels := make([]Label, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}

// Entries returns a copy of every entry in display order.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Label: e.Label, Synonyms: append([]string(nil), e.Synonyms...)}
	}
	return out
}

// Has reports whether label is a known canonical label. Labels are case-sensitive.
func (t *Taxonomy) Has(label Label) bool {
	_, ok := t.index[label]
	return ok
}

// Synonyms returns the synonyms of label, or nil for an unknown label.
func (t *Taxonomy) Synonyms(label Label) []string {
	return t.index[label]
}

// MatchesAny reports whether tagsText matches at least one of the selected
// labels. An empty selection matches everything. Unknown labels never match.
func (t *Taxonomy) MatchesAny(tagsText string, selected []Label) bool {
	if len(selected) == 0 {
		return true
	}

	text := Normalize(tagsText)
	var tokens map[string]struct{}

	for _, label := range selected {
		for _, syn := range t.index[label] {
			if tokens == nil {
				tokens = tokenSet(text)
			}
			if _, ok := tokens[syn]; ok || strings.Contains(text, syn) {
				return true
			}
		}
	}
	return false
}

// MatchesAnyGenre matches against the default taxonomy.
func MatchesAnyGenre(tagsText string, selected []Label) bool {
	return defaultTaxonomy.MatchesAny(tagsText, selected)
}

// Normalize trims, lowercases and replaces commas with spaces.
func Normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), ",", " ")
}

// Tokenize splits text into maximal runs of [a-z0-9]. text should already be normalized.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func tokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
