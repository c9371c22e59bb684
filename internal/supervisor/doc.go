// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor provides process supervision for Reelmatch using suture v4.

Long-running components are suture services arranged in two layers:

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogService        loads movies and the similarity matrix once
	│   └── PosterStoreGCService  badger value-log GC (if POSTER_STORE_PATH is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The API layer starts immediately so liveness checks pass while the catalog
loads. A failed catalog load is not retried: CatalogService returns
suture.ErrTerminateSupervisorTree, the whole tree stops, and Serve returns
the load error so the server exits non-zero.

Supervisor events are logged through sutureslog, which takes a *slog.Logger.
The server passes logging.NewSlogLogger() so the events end up in the same
zerolog stream as everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogService(store, loader.Load, onLoaded, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
