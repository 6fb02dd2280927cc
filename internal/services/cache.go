package services

import (
	"context"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/search"
	"github.com/desertthunder/songrec/internal/shared"
)

const DefaultSearchCacheSize = 256

// SongCache persists songs seen in search results.
type SongCache interface {
	SaveSongs(ctx context.Context, songs []models.Song) error
}

// CachedSearcher wraps a [search.Searcher] with an LRU keyed by the normalized query.
//
// Errors are never cached.
type CachedSearcher struct {
	inner  search.Searcher[models.Song]
	cache  *lru.Cache[string, []models.Song]
	store  SongCache
	logger *log.Logger
}

// NewCachedSearcher creates a [CachedSearcher]. store may be nil.
func NewCachedSearcher(inner search.Searcher[models.Song], size int, store SongCache, logger *log.Logger) *CachedSearcher {
	if size <= 0 {
		size = DefaultSearchCacheSize
	}
	if logger == nil {
		logger = shared.NewDiscardLogger()
	}
	cache, _ := lru.New[string, []models.Song](size)
	return &CachedSearcher{inner: inner, cache: cache, store: store, logger: logger}
}

// Search returns cached results for q when present, otherwise asks the wrapped searcher.
func (c *CachedSearcher) Search(ctx context.Context, q string) ([]models.Song, error) {
	key := shared.NormalizeQuery(q)

	if songs, ok := c.cache.Get(key); ok {
		c.logger.Debug("search cache hit", "query", key)
		return append([]models.Song(nil), songs...), nil
	}

	songs, err := c.inner.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, append([]models.Song(nil), songs...))

	if c.store != nil && len(songs) > 0 {
		if err := c.store.SaveSongs(ctx, songs); err != nil {
			c.logger.Warn("failed to persist search results", "query", key, "err", err)
		}
	}
	return songs, nil
}

// Len returns the number of cached queries.
func (c *CachedSearcher) Len() int { return c.cache.Len() }

// Purge drops every cached query.
func (c *CachedSearcher) Purge() { c.cache.Purge() }
