// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func sampleRecords() []MovieRecord {
	return []MovieRecord{
		{ID: 27205, Title: "Inception", Tags: "action sci-fi thriller dream"},
		{ID: 14160, Title: "Up", Tags: "animation family adventure"},
		{ID: 157336, Title: "Interstellar", Tags: "science fiction space drama"},
	}
}

func TestCatalog_At(t *testing.T) {
	t.Parallel()

	c := NewCatalog(sampleRecords())

	tests := []struct {
		name   string
		pos    int
		wantOK bool
		want   string
	}{
		{"first", 0, true, "Inception"},
		{"last", 2, true, "Interstellar"},
		{"negative", -1, false, ""},
		{"past end", 3, false, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, ok := c.At(tt.pos)
			if ok != tt.wantOK {
				t.Fatalf("At(%d) ok = %v, want %v", tt.pos, ok, tt.wantOK)
			}
			if rec.Title != tt.want {
				t.Errorf("At(%d).Title = %q, want %q", tt.pos, rec.Title, tt.want)
			}
		})
	}
}

func TestCatalog_CopiesInput(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	c := NewCatalog(records)
	records[0].Title = "Changed"

	rec, _ := c.At(0)
	if rec.Title != "Inception" {
		t.Errorf("catalog observed caller mutation: %q", rec.Title)
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	t.Parallel()

	var c *Catalog
	if c.Len() != 0 {
		t.Errorf("nil Len = %d, want 0", c.Len())
	}
	if _, ok := c.At(0); ok {
		t.Error("nil At returned ok")
	}
	if got := c.Titles(); len(got) != 0 {
		t.Errorf("nil Titles = %v", got)
	}
}

func TestCatalog_Titles(t *testing.T) {
	t.Parallel()

	c := NewCatalog(sampleRecords())

	titles := c.Titles()
	if len(titles) != 3 || titles[1] != "Up" {
		t.Errorf("Titles = %v", titles)
	}
}

func TestSimilarityIndex_Score(t *testing.T) {
	t.Parallel()

	idx, err := NewSimilarityIndex([][]float64{
		{1.0, 0.5},
		{0.25, 1.0},
	})
	if err != nil {
		t.Fatalf("NewSimilarityIndex: %v", err)
	}

	if idx.Dim() != 2 {
		t.Errorf("Dim = %d, want 2", idx.Dim())
	}

	tests := []struct {
		i, j   int
		want   float64
		wantOK bool
	}{
		{0, 1, 0.5, true},
		{1, 0, 0.25, true},
		{2, 0, 0, false},
		{0, 2, 0, false},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := idx.Score(tt.i, tt.j)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Score(%d, %d) = %v, %v; want %v, %v", tt.i, tt.j, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := idx.Row(5); ok {
		t.Error("Row(5) should be out of range")
	}
}

func TestSimilarityIndex_RejectsNonSquare(t *testing.T) {
	t.Parallel()

	_, err := NewSimilarityIndex([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("err = %v, want ErrMalformedMatrix", err)
	}
}

func TestArtifacts_Mismatch(t *testing.T) {
	t.Parallel()

	idx, _ := NewSimilarityIndex([][]float64{{1, 0}, {0, 1}})
	arts := &Artifacts{Catalog: NewCatalog(sampleRecords()), Index: idx}

	if !arts.Mismatch() {
		t.Error("expected mismatch for 3 movies and dimension 2")
	}
	stats := arts.Stats()
	if stats.Movies != 3 || stats.SimilarityDim != 2 || !stats.Degraded {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestStore_LoadOnce(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if s.Ready() {
		t.Fatal("store ready before Load")
	}

	var calls int
	var mu sync.Mutex
	fn := func(context.Context) (*Artifacts, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		idx, _ := NewSimilarityIndex(nil)
		return &Artifacts{Catalog: NewCatalog(nil), Index: idx}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Load(context.Background(), fn); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("load function called %d times, want 1", calls)
	}
	if !s.Ready() || s.Artifacts() == nil {
		t.Error("store should be ready after Load")
	}
	if _, err := s.Wait(context.Background()); err != nil {
		t.Errorf("Wait: %v", err)
	}
}

func TestStore_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if s.Err() != nil {
		t.Errorf("Err before load = %v", s.Err())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait err = %v, want context.Canceled", err)
	}
}

func TestStore_FailedLoadNotReady(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, err := s.Load(context.Background(), func(context.Context) (*Artifacts, error) {
		return nil, ErrEmptyCatalog
	})
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("Load err = %v", err)
	}
	if s.Ready() {
		t.Error("store should not be ready after failed load")
	}
	if s.Artifacts() != nil {
		t.Error("Artifacts should be nil after failed load")
	}
	if !errors.Is(s.Err(), ErrEmptyCatalog) {
		t.Errorf("Err = %v, want ErrEmptyCatalog", s.Err())
	}
}
