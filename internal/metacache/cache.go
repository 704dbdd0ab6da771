// Package metacache caches field-metadata snapshots for the analyzer.
//
// A Snapshot is immutable once built: the descriptor slice and the field
// lookup are constructed before the snapshot is published, so a concurrent
// validation or completion request always observes a whole snapshot, never a
// partially built one. Concurrent fetches collapse into a single flight;
// callers of an in-flight fetch all receive the same result.
//
// Invalidation is owned externally: the editor integration (or CLI) calls
// Invalidate when it knows the upstream metadata changed, and the next
// GetOrFetch refetches. Staleness of results delivered after an
// invalidation is the caller's concern; the snapshot Version exists so
// out-of-date results can be discarded by comparison.
package metacache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/querytools/wiqlint/internal/fields"
)

// FetchFunc retrieves the current field descriptors from the metadata
// source. It may block; the cache guarantees at most one call in flight.
type FetchFunc func(ctx context.Context) ([]fields.FieldDescriptor, error)

// Snapshot is one immutable view of the field metadata.
type Snapshot struct {
	Version uuid.UUID
	Fields  []fields.FieldDescriptor
	Lookup  fields.Lookup
}

// Cache provides GetOrFetch/Invalidate over a FetchFunc.
type Cache struct {
	fetch  FetchFunc
	logger *slog.Logger

	group singleflight.Group

	mu  sync.RWMutex
	cur *Snapshot
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for fetch and invalidation events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New creates a cache over the given fetch function.
func New(fetch FetchFunc, opts ...Option) *Cache {
	c := &Cache{fetch: fetch, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the current snapshot, fetching and building one when
// none is cached. Concurrent callers during a fetch share its result.
func (c *Cache) GetOrFetch(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	cur := c.cur
	c.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}

	v, err, _ := c.group.Do("fields", func() (any, error) {
		// A concurrent flight may have published a snapshot already.
		c.mu.RLock()
		cur := c.cur
		c.mu.RUnlock()
		if cur != nil {
			return cur, nil
		}

		descriptors, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		snap := &Snapshot{
			Version: uuid.New(),
			Fields:  descriptors,
			Lookup:  fields.BuildLookup(descriptors),
		}

		c.mu.Lock()
		c.cur = snap
		c.mu.Unlock()

		c.logger.Debug("field metadata snapshot built",
			"version", snap.Version.String(),
			"fields", len(snap.Fields))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Current returns the cached snapshot without fetching, or nil.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Invalidate drops the cached snapshot. The next GetOrFetch refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cur = nil
	c.mu.Unlock()
	c.logger.Debug("field metadata snapshot invalidated")
}
