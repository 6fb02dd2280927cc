package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/search"
)

type countingSearcher struct {
	mu    sync.Mutex
	calls []string
	songs []models.Song
	err   error
}

func (c *countingSearcher) Search(_ context.Context, q string) ([]models.Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, q)
	return c.songs, c.err
}

type memorySongCache struct {
	saved []models.Song
	err   error
}

func (m *memorySongCache) SaveSongs(_ context.Context, songs []models.Song) error {
	m.saved = append(m.saved, songs...)
	return m.err
}

func TestCachedSearcher(t *testing.T) {
	ctx := context.Background()
	songs := []models.Song{{Name: "Yellow"}, {Name: "Yesterday"}}

	t.Run("Hits Cache For Normalized Query", func(t *testing.T) {
		inner := &countingSearcher{songs: songs}
		c := NewCachedSearcher(inner, 8, nil, nil)

		for _, q := range []string{"ye", "YE", "  ye "} {
			got, err := c.Search(ctx, q)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 2 {
				t.Errorf("expected 2 songs, got %d", len(got))
			}
		}

		if len(inner.calls) != 1 {
			t.Errorf("expected 1 upstream call, got %d", len(inner.calls))
		}
		if c.Len() != 1 {
			t.Errorf("expected 1 cached query, got %d", c.Len())
		}
	})

	t.Run("Does Not Cache Errors", func(t *testing.T) {
		inner := &countingSearcher{err: errors.New("boom")}
		c := NewCachedSearcher(inner, 8, nil, nil)

		c.Search(ctx, "x")
		c.Search(ctx, "x")

		if len(inner.calls) != 2 {
			t.Errorf("expected 2 upstream calls, got %d", len(inner.calls))
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d", c.Len())
		}
	})

	t.Run("Evicts Least Recently Used", func(t *testing.T) {
		inner := &countingSearcher{songs: songs}
		c := NewCachedSearcher(inner, 2, nil, nil)

		c.Search(ctx, "a")
		c.Search(ctx, "b")
		c.Search(ctx, "c")
		c.Search(ctx, "a")

		if len(inner.calls) != 4 {
			t.Errorf("expected evicted query to be fetched again, got calls %v", inner.calls)
		}
	})

	t.Run("Returned Slice Is A Copy", func(t *testing.T) {
		inner := &countingSearcher{songs: songs}
		c := NewCachedSearcher(inner, 8, nil, nil)

		got, _ := c.Search(ctx, "y")
		got[0].Name = "mutated"

		again, _ := c.Search(ctx, "y")
		if again[0].Name != "Yellow" {
			t.Errorf("cache was mutated through returned slice: %v", again)
		}
	})

	t.Run("Persists To Song Cache", func(t *testing.T) {
		inner := &countingSearcher{songs: songs}
		store := &memorySongCache{err: errors.New("disk full")}
		c := NewCachedSearcher(inner, 8, store, nil)

		got, err := c.Search(ctx, "y")
		if err != nil {
			t.Fatalf("store errors must not fail the search, got %v", err)
		}
		if len(got) != 2 || len(store.saved) != 2 {
			t.Errorf("expected songs to be saved, got %v", store.saved)
		}
	})

	t.Run("Purge", func(t *testing.T) {
		c := NewCachedSearcher(&countingSearcher{songs: songs}, 8, nil, nil)
		c.Search(ctx, "y")
		c.Purge()
		if c.Len() != 0 {
			t.Errorf("expected empty cache after purge, got %d", c.Len())
		}
	})

	var _ search.Searcher[models.Song] = (*CachedSearcher)(nil)
	var _ search.Searcher[models.Song] = (*Client)(nil)
}
