// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// ErrNotStored is returned by Store.Get when no live entry exists.
var ErrNotStored = errors.New("poster: not in store")

const posterKeyPrefix = "poster:"

// storedPoster is the persisted value for one movie id.
type storedPoster struct {
	URL      string    `json:"url"`
	StoredAt time.Time `json:"stored_at"`
}

// Store persists resolved poster URLs in BadgerDB with a TTL so that
// restarts do not re-fetch every poster.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenStore opens (or creates) a store at path. An empty path opens an
// in-memory database.
func OpenStore(path string, ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for posters: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

func posterKey(id int) []byte {
	return []byte(posterKeyPrefix + strconv.Itoa(id))
}

// Get returns the stored URL for id or ErrNotStored.
func (s *Store) Get(ctx context.Context, id int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var rec storedPoster
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(posterKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotStored
		}
		if err != nil {
			return fmt.Errorf("get poster: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return "", err
	}
	return rec.URL, nil
}

// Put stores url for id. Entries expire after the store TTL when it is positive.
func (s *Store) Put(ctx context.Context, id int, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(storedPoster{URL: url, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal poster: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(posterKey(id), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set poster: %w", err)
		}
		return nil
	})
}

// Delete removes the entry for id. Missing entries are not an error.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(posterKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete poster: %w", err)
		}
		return nil
	})
}

// Count returns the number of live entries.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(posterKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC runs one value-log garbage collection pass. It reports whether any
// file was rewritten; nothing to collect is not an error.
func (s *Store) RunGC(discardRatio float64) (bool, error) {
	err := s.db.RunValueLogGC(discardRatio)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected), errors.Is(err, badger.ErrGCInMemoryMode):
		return false, nil
	default:
		return false, fmt.Errorf("poster store gc: %w", err)
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
