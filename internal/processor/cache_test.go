package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bkellow/domainhawk/internal/store"
)

type countingConfigStorer struct {
	calls int
	cfg   *store.ServerConfig
	err   error
}

func (s *countingConfigStorer) GetServerConfig(ctx context.Context, serverID string) (*store.ServerConfig, error) {
	s.calls++
	return s.cfg, s.err
}

func TestConfigCache(t *testing.T) {
	ctx := context.Background()
	cfg := &store.ServerConfig{FeedChannelID: "feed1", PingChannelID: "ping1"}

	t.Run("Caches within TTL", func(t *testing.T) {
		storer := &countingConfigStorer{cfg: cfg}
		cache := NewConfigCache(storer, time.Minute)

		for i := 0; i < 3; i++ {
			got, err := cache.GetServerConfig(ctx, "guild1")
			if err != nil {
				t.Fatalf("GetServerConfig failed: %v", err)
			}
			if got.FeedChannelID != "feed1" {
				t.Errorf("unexpected config: %+v", got)
			}
		}

		if storer.calls != 1 {
			t.Errorf("expected 1 store call, got %d", storer.calls)
		}
	})

	t.Run("Refetches after TTL", func(t *testing.T) {
		storer := &countingConfigStorer{cfg: cfg}
		cache := NewConfigCache(storer, time.Nanosecond)

		cache.GetServerConfig(ctx, "guild1")
		time.Sleep(time.Millisecond)
		cache.GetServerConfig(ctx, "guild1")

		if storer.calls != 2 {
			t.Errorf("expected 2 store calls, got %d", storer.calls)
		}
	})

	t.Run("Distinct servers fetch independently", func(t *testing.T) {
		storer := &countingConfigStorer{cfg: cfg}
		cache := NewConfigCache(storer, time.Minute)

		cache.GetServerConfig(ctx, "guild1")
		cache.GetServerConfig(ctx, "guild2")

		if storer.calls != 2 {
			t.Errorf("expected 2 store calls, got %d", storer.calls)
		}
	})

	t.Run("Error is not cached", func(t *testing.T) {
		storer := &countingConfigStorer{err: errors.New("firestore unavailable")}
		cache := NewConfigCache(storer, time.Minute)

		if _, err := cache.GetServerConfig(ctx, "guild1"); err == nil {
			t.Fatal("expected error, got nil")
		}

		storer.err = nil
		storer.cfg = cfg
		got, err := cache.GetServerConfig(ctx, "guild1")
		if err != nil || got == nil {
			t.Errorf("expected recovery after store comes back, got %v %v", got, err)
		}
		if storer.calls != 2 {
			t.Errorf("expected 2 store calls, got %d", storer.calls)
		}
	})
}
