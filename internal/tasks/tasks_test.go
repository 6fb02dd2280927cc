package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/songrec/internal/formatter"
	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
	th "github.com/desertthunder/songrec/internal/testing"
)

type mockRecommender struct {
	mu      sync.Mutex
	songs   []models.Song
	weather *models.WeatherRecommendations
	fail    map[string]error
	calls   []string
}

func (m *mockRecommender) Recommend(ctx context.Context, seed string) ([]models.Song, error) {
	m.mu.Lock()
	m.calls = append(m.calls, seed)
	err := m.fail[seed]
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.songs, nil
}

func (m *mockRecommender) WeatherRecommend(ctx context.Context, coords models.Coordinates) (*models.WeatherRecommendations, error) {
	if m.weather == nil {
		return nil, fmt.Errorf("%w: weather unavailable", shared.ErrAPIRequest)
	}
	return m.weather, nil
}

type mockCache struct {
	mu    sync.Mutex
	songs []models.Song
	err   error
}

func (m *mockCache) SaveSongs(ctx context.Context, songs []models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs = append(m.songs, songs...)
	return m.err
}

type mockHistory struct {
	mu      sync.Mutex
	entries []*models.HistoryEntry
	err     error
}

func (m *mockHistory) Create(entry *models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func TestEngineRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("Caches And Records", func(t *testing.T) {
		client := &mockRecommender{songs: th.Catalog()}
		cache := &mockCache{}
		history := &mockHistory{}
		engine := NewEngine(client, EngineOpts{Cache: cache, History: history})
		progress := make(chan ProgressUpdate, 10)

		res, err := engine.Recommend(ctx, progress, "Yellow")
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if res.Seed != "Yellow" || len(res.Songs) != len(th.Catalog()) {
			t.Errorf("unexpected result %+v", res)
		}
		if len(cache.songs) != len(th.Catalog()) {
			t.Errorf("expected songs to be cached, got %d", len(cache.songs))
		}
		if len(history.entries) != 1 || history.entries[0].Kind() != models.HistoryRecommend {
			t.Errorf("expected one recommend history entry, got %v", history.entries)
		}

		close(progress)
		phases := map[Phase]bool{}
		for u := range progress {
			phases[u.Phase] = true
		}
		if !phases[FetchRecommendations] || !phases[SaveResults] {
			t.Errorf("missing progress phases, got %v", phases)
		}
	})

	t.Run("Cache And History Failures Are Not Fatal", func(t *testing.T) {
		client := &mockRecommender{songs: th.Catalog()}
		engine := NewEngine(client, EngineOpts{
			Cache:   &mockCache{err: errors.New("disk full")},
			History: &mockHistory{err: errors.New("locked")},
		})

		if _, err := engine.Recommend(ctx, nil, "Yellow"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Propagates Client Errors", func(t *testing.T) {
		client := &mockRecommender{fail: map[string]error{"Nope": shared.ErrSongNotFound}}
		history := &mockHistory{}
		engine := NewEngine(client, EngineOpts{History: history})

		_, err := engine.Recommend(ctx, nil, "Nope")
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
		if len(history.entries) != 0 {
			t.Error("failed runs should not be recorded")
		}
	})

	t.Run("Nil Client", func(t *testing.T) {
		_, err := NewEngine(nil, EngineOpts{}).Recommend(ctx, nil, "x")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Progress Never Blocks", func(t *testing.T) {
		engine := NewEngine(&mockRecommender{songs: th.Catalog()}, EngineOpts{Cache: &mockCache{}})
		full := make(chan ProgressUpdate)

		if _, err := engine.Recommend(ctx, full, "Yellow"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestEngineWeather(t *testing.T) {
	client := &mockRecommender{weather: &models.WeatherRecommendations{
		Weather: models.Weather{City: "Oslo"},
		Mood:    "calm",
		Songs:   th.Catalog()[:2],
	}}
	history := &mockHistory{}
	engine := NewEngine(client, EngineOpts{History: history})

	res, err := engine.Weather(context.Background(), nil, models.Coordinates{Latitude: 59.91, Longitude: 10.75})
	if err != nil {
		t.Fatalf("Weather() error = %v", err)
	}
	if res.Mood != "calm" {
		t.Errorf("unexpected mood %q", res.Mood)
	}
	if len(history.entries) != 1 || history.entries[0].Query() != "59.9100,10.7500" || history.entries[0].Selected() != "calm" {
		t.Errorf("unexpected history %v", history.entries)
	}
}

func TestEngineRecordSearch(t *testing.T) {
	history := &mockHistory{}
	engine := NewEngine(&mockRecommender{}, EngineOpts{History: history})

	engine.RecordSearch("", 0, "")
	engine.RecordSearch("yel", 3, "")
	engine.RecordSearch("yel", 3, "Yellow")

	if len(history.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history.entries))
	}
	if history.entries[0].Kind() != models.HistorySearch || history.entries[1].Kind() != models.HistorySelect {
		t.Errorf("unexpected kinds %s, %s", history.entries[0].Kind(), history.entries[1].Kind())
	}
}

func TestEngineBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Exports Every Seed", func(t *testing.T) {
		dir := t.TempDir()
		client := &mockRecommender{
			songs: th.Catalog(),
			fail:  map[string]error{"Missing": shared.ErrSongNotFound},
		}
		engine := NewEngine(client, EngineOpts{})
		progress := make(chan ProgressUpdate, 20)

		res, err := engine.Batch(ctx, progress, []string{"Yellow", " ", "Missing", "yellow", "Hey Jude"}, BatchOpts{
			Format:     formatter.FormatCSV,
			OutputDir:  dir,
			NumWorkers: 2,
			RateLimit:  1000,
		})
		if err != nil {
			t.Fatalf("Batch() error = %v", err)
		}

		if res.Total != 3 || res.Succeeded != 2 || res.Failed != 1 {
			t.Errorf("unexpected counts total=%d ok=%d failed=%d", res.Total, res.Succeeded, res.Failed)
		}
		if res.Results[0].Seed != "Yellow" || res.Results[1].Seed != "Missing" || res.Results[2].Seed != "Hey Jude" {
			t.Errorf("results out of seed order: %+v", res.Results)
		}
		if res.Results[1].Success() || !strings.Contains(res.Results[1].Error, "song not found") {
			t.Errorf("expected Missing to fail, got %+v", res.Results[1])
		}

		want := filepath.Join(dir, "001-yellow.csv")
		if res.Results[0].File != want {
			t.Errorf("expected file %s, got %s", want, res.Results[0].File)
		}
		th.AssertFileExists(t, want)
		th.AssertFileExists(t, filepath.Join(dir, "003-hey-jude.csv"))
		th.AssertFileExists(t, res.ManifestPath)

		if !strings.Contains(th.MustReadFile(t, res.ManifestPath), `"succeeded": 2`) {
			t.Error("manifest missing summary")
		}
		if len(progress) != 3 {
			t.Errorf("expected 3 progress updates, got %d", len(progress))
		}
	})

	t.Run("No Seeds", func(t *testing.T) {
		_, err := NewEngine(&mockRecommender{}, EngineOpts{}).Batch(ctx, nil, []string{"", "  "}, BatchOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		dir := t.TempDir()
		c, cancel := context.WithCancel(ctx)
		cancel()

		res, err := NewEngine(&mockRecommender{songs: th.Catalog()}, EngineOpts{}).Batch(c, nil, []string{"a", "b"}, BatchOpts{OutputDir: dir})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if res == nil || res.Failed != 2 {
			t.Fatalf("expected both seeds to fail, got %+v", res)
		}
		if _, statErr := os.Stat(filepath.Join(dir, "batch_manifest.json")); statErr != nil {
			t.Errorf("expected manifest to be written, got %v", statErr)
		}
	})
}
