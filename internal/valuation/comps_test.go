package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bkellow/domainhawk/internal/store"
)

// fakeCompSource counts fetches so tests can observe caching behavior.
type fakeCompSource struct {
	calls int
	comps []store.ComparableSale
	err   error
}

func (f *fakeCompSource) ListComparableSales(ctx context.Context, limit int) ([]store.ComparableSale, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.comps, nil
}

func TestCompCache_ServesCachedSnapshot(t *testing.T) {
	ctx := context.Background()
	source := &fakeCompSource{comps: []store.ComparableSale{{DomainName: "a.com", SalePrice: 100}}}
	cache := NewCompCache(source, time.Hour)

	first := cache.Snapshot(ctx)
	second := cache.Snapshot(ctx)

	if source.calls != 1 {
		t.Errorf("expected 1 fetch within TTL, got %d", source.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("expected both snapshots populated, got %d and %d", len(first), len(second))
	}
}

func TestCompCache_RefetchesAfterTTL(t *testing.T) {
	ctx := context.Background()
	source := &fakeCompSource{}
	cache := NewCompCache(source, time.Nanosecond)

	cache.Snapshot(ctx)
	time.Sleep(time.Millisecond)
	cache.Snapshot(ctx)

	if source.calls != 2 {
		t.Errorf("expected refetch after TTL expiry, got %d fetches", source.calls)
	}
}

func TestCompCache_InvalidateForcesRefetch(t *testing.T) {
	ctx := context.Background()
	source := &fakeCompSource{}
	cache := NewCompCache(source, time.Hour)

	cache.Snapshot(ctx)
	cache.Invalidate()
	cache.Snapshot(ctx)

	if source.calls != 2 {
		t.Errorf("expected refetch after Invalidate, got %d fetches", source.calls)
	}
}

func TestCompCache_StaleFallbackOnFetchError(t *testing.T) {
	ctx := context.Background()
	source := &fakeCompSource{comps: []store.ComparableSale{{DomainName: "a.com", SalePrice: 100}}}
	cache := NewCompCache(source, time.Nanosecond)

	got := cache.Snapshot(ctx)
	if len(got) != 1 {
		t.Fatalf("expected initial snapshot of 1 comp, got %d", len(got))
	}

	// The source starts failing; an expired snapshot is served stale rather
	// than dropped.
	source.err = errors.New("firestore unavailable")
	time.Sleep(time.Millisecond)

	got = cache.Snapshot(ctx)
	if len(got) != 1 {
		t.Errorf("expected stale snapshot on fetch error, got %d comps", len(got))
	}
}

func TestCompCache_ErrorWithNoSnapshotYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	source := &fakeCompSource{err: errors.New("firestore unavailable")}
	cache := NewCompCache(source, time.Hour)

	if got := cache.Snapshot(ctx); len(got) != 0 {
		t.Errorf("expected empty snapshot when nothing was ever fetched, got %d", len(got))
	}
}

func TestNewCompCache_DefaultTTL(t *testing.T) {
	cache := NewCompCache(&fakeCompSource{}, 0)
	if cache.ttl != compCacheTTL {
		t.Errorf("expected default TTL %v, got %v", compCacheTTL, cache.ttl)
	}
}
