// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves ids concurrently with at most concurrency lookups in
// flight. urls[i] belongs to ids[i] regardless of completion order.
func ResolveAll(ctx context.Context, r Resolver, ids []int, concurrency int) []string {
	urls := make([]string, len(ids))
	if len(ids) == 0 {
		return urls
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			urls[i] = r.Resolve(gctx, id)
			return nil
		})
	}
	_ = g.Wait() // resolvers never fail

	return urls
}
