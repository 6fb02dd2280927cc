package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// SongCacheAdapter records songs seen in search results and recommendations, and serves
// them back as an offline searcher.
//
// Search results only carry a name; when a fuller record for the same name arrives later
// the existing row is enriched instead of duplicated.
type SongCacheAdapter struct {
	repo  *SongRepository
	limit int
}

// NewSongCacheAdapter creates a new SongCacheAdapter. limit caps Search results (default 50).
func NewSongCacheAdapter(repo *SongRepository, limit int) *SongCacheAdapter {
	if limit <= 0 {
		limit = 50
	}
	return &SongCacheAdapter{repo: repo, limit: limit}
}

// SaveSongs caches every song, skipping ones already known.
func (a *SongCacheAdapter) SaveSongs(ctx context.Context, songs []models.Song) error {
	for _, s := range songs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.SaveSong(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveSong caches one song.
func (a *SongCacheAdapter) SaveSong(song models.Song) error {
	song.Name = strings.TrimSpace(song.Name)
	if song.Name == "" {
		return nil
	}
	song.Similarity = 0

	existing, err := a.repo.GetByName(song.Name)
	switch {
	case err == nil:
		merged, changed := merge(existing.Song(), song)
		if !changed {
			return nil
		}
		updated := models.NewCachedSong(merged)
		updated.SetID(existing.ID())
		if err := a.repo.Update(updated); err != nil && !isUniqueViolation(err) {
			return fmt.Errorf("failed to cache song: %w", err)
		}
		return nil
	case !errors.Is(err, shared.ErrNotFound):
		return fmt.Errorf("failed to look up song: %w", err)
	}

	if err := a.repo.Create(models.NewCachedSong(song)); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to cache song: %w", err)
	}
	return nil
}

// Search implements [search.Searcher] over the cache.
func (a *SongCacheAdapter) Search(ctx context.Context, q string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cached, err := a.repo.Search(q, a.limit)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, len(cached))
	for i, c := range cached {
		songs[i] = c.Song()
	}
	return songs, nil
}

// merge fills empty fields of existing from incoming.
func merge(existing, incoming models.Song) (models.Song, bool) {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&existing.Artist, incoming.Artist)
	fill(&existing.Genre, incoming.Genre)
	fill(&existing.Mood, incoming.Mood)
	return existing, changed
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
