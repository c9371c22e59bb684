// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// scriptedCollector returns results in order, repeating the last one.
type scriptedCollector struct {
	mu      sync.Mutex
	results []gcResult
	ratios  []float64
}

type gcResult struct {
	rewritten bool
	err       error
}

func (c *scriptedCollector) RunGC(ratio float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ratios = append(c.ratios, ratio)
	r := c.results[min(len(c.ratios), len(c.results))-1]
	return r.rewritten, r.err
}

func (c *scriptedCollector) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ratios)
}

func TestNewPosterStoreGCService_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval  time.Duration
		ratio     float64
		wantEvery time.Duration
		wantRatio float64
	}{
		{0, 0, 10 * time.Minute, 0.5},
		{time.Minute, 1.5, time.Minute, 0.5},
		{time.Second, 0.7, time.Second, 0.7},
	}
	for _, tt := range tests {
		svc := NewPosterStoreGCService(&scriptedCollector{}, tt.interval, tt.ratio, zerolog.Nop())
		if svc.interval != tt.wantEvery || svc.discardRatio != tt.wantRatio {
			t.Errorf("(%v, %v) -> (%v, %v), want (%v, %v)",
				tt.interval, tt.ratio, svc.interval, svc.discardRatio, tt.wantEvery, tt.wantRatio)
		}
	}
}

func TestPosterStoreGCService_RecordsResults(t *testing.T) {
	before := map[string]float64{}
	for _, result := range []string{"rewritten", "noop", "error"} {
		before[result] = testutil.ToFloat64(metrics.PosterStoreGCRuns.WithLabelValues(result))
	}

	collector := &scriptedCollector{results: []gcResult{
		{rewritten: true},
		{err: errors.New("disk full")},
		{},
	}}
	svc := NewPosterStoreGCService(collector, 5*time.Millisecond, 0.25, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for collector.calls() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve err = %v", err)
	}

	if collector.calls() < 3 {
		t.Fatalf("GC passes = %d, want >= 3", collector.calls())
	}
	for _, result := range []string{"rewritten", "noop", "error"} {
		if got := testutil.ToFloat64(metrics.PosterStoreGCRuns.WithLabelValues(result)) - before[result]; got < 1 {
			t.Errorf("%s delta = %v, want >= 1", result, got)
		}
	}
	if collector.ratios[0] != 0.25 {
		t.Errorf("ratio = %v", collector.ratios[0])
	}
}
