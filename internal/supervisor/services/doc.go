// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for Reelmatch components.

Each wrapper implements suture.Service and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService:
  - Wraps *http.Server; ListenAndServe runs in a goroutine
  - Graceful Shutdown with a bounded timeout on cancellation

CatalogService:
  - Loads the catalog through a load-once catalog.Store
  - Publishes catalog metrics and hands the artifacts to a callback
  - Returns suture.ErrTerminateSupervisorTree on failure, stopping the tree

PosterStoreGCService:
  - Runs badger value-log GC on the poster store at a fixed interval
  - Counts passes in poster_store_gc_runs_total by result

Serve returns ctx.Err() on cancellation so suture treats the stop as clean.
*/
package services
