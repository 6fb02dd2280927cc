package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "history")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestHistoryRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))
		entry := models.NewHistoryEntry(models.HistoryRecommend, "Yellow", "Yellow", 10)

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		if entry.ID() == "" || entry.Sequence() != 1 {
			t.Errorf("expected ID and sequence to be set, got %q/%d", entry.ID(), entry.Sequence())
		}

		got, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if got.Kind() != models.HistoryRecommend || got.Query() != "Yellow" || got.ResultCount() != 10 {
			t.Errorf("unexpected entry %+v", got)
		}
	})

	t.Run("Validation Error", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))
		err := repo.Create(models.NewHistoryEntry("bogus", "q", "", 0))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))
		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List Newest First With Filters", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))
		for _, e := range []*models.HistoryEntry{
			models.NewHistoryEntry(models.HistorySearch, "ye", "", 3),
			models.NewHistoryEntry(models.HistorySelect, "ye", "Yellow", 0),
			models.NewHistoryEntry(models.HistoryRecommend, "Yellow", "", 10),
			models.NewHistoryEntry(models.HistorySearch, "bo", "", 1),
		} {
			if err := repo.Create(e); err != nil {
				t.Fatalf("failed to create entry: %v", err)
			}
		}

		all, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(all) != 4 || all[0].Query() != "bo" {
			t.Errorf("expected newest first, got %d entries starting with %q", len(all), all[0].Query())
		}

		searches, err := repo.List(map[string]any{"kind": models.HistorySearch})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(searches) != 2 {
			t.Errorf("expected 2 searches, got %d", len(searches))
		}

		limited, _ := repo.List(map[string]any{"kind": "search", "limit": 1})
		if len(limited) != 1 {
			t.Errorf("expected 1 entry, got %d", len(limited))
		}
	})

	t.Run("Delete And Clear", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))
		a := models.NewHistoryEntry(models.HistorySearch, "a", "", 0)
		b := models.NewHistoryEntry(models.HistorySearch, "b", "", 0)
		repo.Create(a)
		repo.Create(b)

		if err := repo.Delete(a.ID()); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := repo.Delete(a.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}

		n, err := repo.Clear()
		if err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 cleared row, got %d", n)
		}
	})
}

func TestSongRepository(t *testing.T) {
	t.Run("Create And Lookups", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		song := models.NewCachedSong(models.Song{Name: "Yellow", Artist: "Coldplay", Genre: "Rock"})

		if err := repo.Create(song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		byID, err := repo.Get(song.ID())
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if byID.Song().Artist != "Coldplay" {
			t.Errorf("unexpected song %+v", byID.Song())
		}

		byKey, err := repo.GetByKey("  yellow ", "COLDPLAY")
		if err != nil {
			t.Fatalf("GetByKey() error = %v", err)
		}
		if byKey.ID() != song.ID() {
			t.Error("expected GetByKey to find the same song")
		}

		byName, err := repo.GetByName("YELLOW")
		if err != nil {
			t.Fatalf("GetByName() error = %v", err)
		}
		if byName.ID() != song.ID() {
			t.Error("expected GetByName to find the same song")
		}
	})

	t.Run("Duplicate Key", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		repo.Create(models.NewCachedSong(models.Song{Name: "Yellow", Artist: "Coldplay"}))
		if err := repo.Create(models.NewCachedSong(models.Song{Name: "yellow", Artist: "coldplay"})); err == nil {
			t.Error("expected unique constraint error")
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		song := models.NewCachedSong(models.Song{Name: "Yellow"})
		repo.Create(song)

		updated := models.NewCachedSong(models.Song{Name: "Yellow", Artist: "Coldplay"})
		updated.SetID(song.ID())
		if err := repo.Update(updated); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if _, err := repo.GetByKey("Yellow", "Coldplay"); err != nil {
			t.Errorf("expected key to follow the artist, got %v", err)
		}

		missing := models.NewCachedSong(models.Song{Name: "x"})
		missing.SetID("nope")
		if err := repo.Update(missing); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Soft Delete", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		song := models.NewCachedSong(models.Song{Name: "Yellow"})
		repo.Create(song)

		if err := repo.Delete(song.ID()); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Get(song.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected deleted song to be hidden, got %v", err)
		}
		if n, _ := repo.Count(); n != 0 {
			t.Errorf("expected count 0, got %d", n)
		}
	})

	t.Run("Search", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		for _, name := range []string{"Yellow Submarine", "Mellow Yellow", "Hey Jude", "100% Pure Love", "Y_M_C_A"} {
			if err := repo.Create(models.NewCachedSong(models.Song{Name: name})); err != nil {
				t.Fatalf("failed to create %q: %v", name, err)
			}
		}

		got, err := repo.Search("YELLOW", 10)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 2 || got[0].Song().Name != "Mellow Yellow" {
			t.Errorf("expected two yellow songs ordered by name, got %d", len(got))
		}

		pct, _ := repo.Search("%", 10)
		if len(pct) != 1 || pct[0].Song().Name != "100% Pure Love" {
			t.Errorf("expected %% to match literally, got %d results", len(pct))
		}

		under, _ := repo.Search("_", 10)
		if len(under) != 1 {
			t.Errorf("expected _ to match literally, got %d results", len(under))
		}

		limited, _ := repo.Search("", 2)
		if len(limited) != 2 {
			t.Errorf("expected limit 2, got %d", len(limited))
		}
	})

	t.Run("List Filters", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		repo.Create(models.NewCachedSong(models.Song{Name: "A", Genre: "Rock"}))
		repo.Create(models.NewCachedSong(models.Song{Name: "B", Genre: "Pop"}))
		repo.Create(models.NewCachedSong(models.Song{Name: "C", Genre: "rock"}))

		rock, err := repo.List(map[string]any{"genre": "ROCK"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(rock) != 2 {
			t.Errorf("expected 2 rock songs, got %d", len(rock))
		}

		n, _ := repo.Clear()
		if n != 3 {
			t.Errorf("expected 3 cleared rows, got %d", n)
		}
	})
}

func TestSongCacheAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves And Searches", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		cache := NewSongCacheAdapter(repo, 0)

		err := cache.SaveSongs(ctx, models.SongsFromNames([]string{"Yellow", "Yesterday", "  ", "Yellow"}))
		if err != nil {
			t.Fatalf("SaveSongs() error = %v", err)
		}

		if n, _ := repo.Count(); n != 2 {
			t.Errorf("expected 2 cached songs, got %d", n)
		}

		songs, err := cache.Search(ctx, "ye")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}
	})

	t.Run("Enriches Name Only Rows", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		cache := NewSongCacheAdapter(repo, 10)

		cache.SaveSong(models.Song{Name: "Yellow"})
		if err := cache.SaveSong(models.Song{Name: "yellow", Artist: "Coldplay", Mood: "Calm", Similarity: 0.9}); err != nil {
			t.Fatalf("SaveSong() error = %v", err)
		}

		if n, _ := repo.Count(); n != 1 {
			t.Errorf("expected a single row, got %d", n)
		}
		got, err := repo.GetByName("Yellow")
		if err != nil {
			t.Fatalf("GetByName() error = %v", err)
		}
		if got.Song().Artist != "Coldplay" || got.Song().Mood != "Calm" {
			t.Errorf("expected enriched song, got %+v", got.Song())
		}
		if got.Song().Name != "Yellow" {
			t.Errorf("expected original name casing to be kept, got %q", got.Song().Name)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		cache := NewSongCacheAdapter(NewSongRepository(setupTestDB(t)), 10)
		c, cancel := context.WithCancel(ctx)
		cancel()

		if err := cache.SaveSongs(c, []models.Song{{Name: "x"}}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if _, err := cache.Search(c, "x"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
