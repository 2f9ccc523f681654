package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/JonMunkholm/newsreview/internal/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DatasetLoader loads a dataset by path. *Loader implements it.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*Dataset, error)
}

// cacheEntry is a memoized load outcome. err is nil or wraps
// ErrMissingDataSource; other failures are never cached.
type cacheEntry struct {
	ds  *Dataset
	err error
}

// DatasetCache memoizes dataset loads per path for the life of the process.
//
// An entry is populated by the first successful load or by a missing data
// source and is never invalidated: later edits to the file are not seen.
// Schema mismatches and read errors are returned without caching, so the
// next call reads the file again. Concurrent first loads of one path share a
// single read.
//
// The cache is bounded; it evicts the least recently used path only when
// more distinct paths than its size are requested.
type DatasetCache struct {
	loader DatasetLoader
	cache  *lru.Cache[string, cacheEntry]
	group  singleflight.Group
}

// NewDatasetCache creates a cache holding up to size paths.
func NewDatasetCache(loader DatasetLoader, size int) (*DatasetCache, error) {
	if loader == nil {
		return nil, errors.New("dataset cache: nil loader")
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("dataset cache: %w", err)
	}
	return &DatasetCache{loader: loader, cache: c}, nil
}

// Get returns the dataset for path, loading it on first use.
// Like Loader.Load, a missing file yields an empty dataset together with
// ErrMissingDataSource.
func (c *DatasetCache) Get(ctx context.Context, path string) (*Dataset, error) {
	key := cacheKey(path)

	if e, ok := c.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return e.ds, e.err
	}
	metrics.RecordCacheLookup(false)

	// The shared load ignores the first caller's cancellation; each caller
	// stops waiting on its own context.
	ch := c.group.DoChan(key, func() (any, error) {
		if e, ok := c.cache.Get(key); ok {
			return e, nil
		}

		ds, err := c.loader.Load(context.WithoutCancel(ctx), path)
		if err != nil && !errors.Is(err, ErrMissingDataSource) {
			return nil, err
		}

		e := cacheEntry{ds: ds, err: err}
		c.cache.Add(key, e)
		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		e := res.Val.(cacheEntry)
		return e.ds, e.err
	}
}

// cacheKey identifies a path independent of how it was spelled.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
