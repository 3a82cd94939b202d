package valuation

import (
	"context"
	"sync"
	"time"

	"github.com/bkellow/domainhawk/internal/logger"
	"github.com/bkellow/domainhawk/internal/store"
)

const (
	// compCacheTTL bounds how stale the comp snapshot may get before the
	// next read triggers a refetch.
	compCacheTTL = 5 * time.Minute
	// compFetchLimit caps a snapshot at the 1000 highest-priced sales.
	compFetchLimit = 1000
)

// CompSource is the read interface over the comparable-sales store.
type CompSource interface {
	ListComparableSales(ctx context.Context, limit int) ([]store.ComparableSale, error)
}

// CompCache holds an in-memory snapshot of recent comparable sales. It is the
// only shared mutable state in the valuation core: the snapshot is replaced
// wholesale on refresh, never mutated in place, so concurrent readers either
// see the old slice or the new one.
type CompCache struct {
	mu        sync.RWMutex
	source    CompSource
	ttl       time.Duration
	snapshot  []store.ComparableSale
	fetchedAt time.Time
}

// NewCompCache creates a cache over the given source. A non-positive ttl
// falls back to the default 5 minutes.
func NewCompCache(source CompSource, ttl time.Duration) *CompCache {
	if ttl <= 0 {
		ttl = compCacheTTL
	}
	return &CompCache{source: source, ttl: ttl}
}

// Snapshot returns the cached comps, refetching when the snapshot is older
// than the TTL. It never returns an error: a failed refetch logs a warning
// and serves the stale snapshot, or an empty one if nothing was ever
// fetched.
func (c *CompCache) Snapshot(ctx context.Context) []store.ComparableSale {
	c.mu.RLock()
	snapshot, fetchedAt := c.snapshot, c.fetchedAt
	c.mu.RUnlock()

	if !fetchedAt.IsZero() && time.Since(fetchedAt) < c.ttl {
		return snapshot
	}

	// Fetch outside the lock so a slow refresh never blocks readers; they
	// proceed with the stale snapshot already in hand.
	fresh, err := c.source.ListComparableSales(ctx, compFetchLimit)
	if err != nil {
		logger.Warn(ctx, "comp fetch failed, serving stale snapshot",
			"error", err, "stale_count", len(snapshot))
		return snapshot
	}

	c.mu.Lock()
	c.snapshot = fresh
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return fresh
}

// Invalidate clears the snapshot so the next Snapshot call refetches.
// Callers that append new comparable sales must invalidate, or the new
// evidence stays invisible for up to a full TTL window.
func (c *CompCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
