// package tasks runs recommendation workflows on top of the server client with progress reporting.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// Recommender is the subset of the server client the engine needs.
type Recommender interface {
	Recommend(ctx context.Context, songName string) ([]models.Song, error)
	WeatherRecommend(ctx context.Context, coords models.Coordinates) (*models.WeatherRecommendations, error)
}

// SongCacher persists songs seen in results.
type SongCacher interface {
	SaveSongs(ctx context.Context, songs []models.Song) error
}

// HistoryRecorder stores history entries.
type HistoryRecorder interface {
	Create(entry *models.HistoryEntry) error
}

// EngineOpts holds optional engine dependencies.
type EngineOpts struct {
	Cache   SongCacher
	History HistoryRecorder
	Logger  *log.Logger
}

// RecommendResult is the outcome of a single recommendation run.
type RecommendResult struct {
	Seed  string
	Songs []models.Song
}

// Engine runs recommendation workflows.
//
// Caching and history are best effort: failures are logged and never fail the run.
type Engine struct {
	client  Recommender
	cache   SongCacher
	history HistoryRecorder
	logger  *log.Logger
}

// NewEngine creates an [Engine].
func NewEngine(client Recommender, opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewDiscardLogger()
	}
	return &Engine{
		client:  client,
		cache:   opts.Cache,
		history: opts.History,
		logger:  opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Recommend fetches songs similar to seed, caches them and records the run in history.
func (e *Engine) Recommend(ctx context.Context, progress chan<- ProgressUpdate, seed string) (*RecommendResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: client not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchRecommendationsUpdate(1, 1, seed))

	songs, err := e.client.Recommend(ctx, seed)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, recommendationsFoundUpdate(1, 1, seed, len(songs)))
	e.save(ctx, progress, songs)
	e.record(models.NewHistoryEntry(models.HistoryRecommend, seed, "", len(songs)))

	return &RecommendResult{Seed: seed, Songs: songs}, nil
}

// Weather fetches weather-based recommendations for coords.
func (e *Engine) Weather(ctx context.Context, progress chan<- ProgressUpdate, coords models.Coordinates) (*models.WeatherRecommendations, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: client not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchWeatherUpdate())

	res, err := e.client.WeatherRecommend(ctx, coords)
	if err != nil {
		return nil, err
	}

	e.save(ctx, progress, res.Songs)
	query := fmt.Sprintf("%.4f,%.4f", coords.Latitude, coords.Longitude)
	e.record(models.NewHistoryEntry(models.HistoryWeather, query, res.Mood, len(res.Songs)))

	return res, nil
}

// RecordSearch stores a finished search and, if the user picked one, the selected song.
func (e *Engine) RecordSearch(query string, resultCount int, selected string) {
	if query == "" {
		return
	}
	if selected == "" {
		e.record(models.NewHistoryEntry(models.HistorySearch, query, "", resultCount))
		return
	}
	e.record(models.NewHistoryEntry(models.HistorySelect, query, selected, resultCount))
}

func (e *Engine) save(ctx context.Context, progress chan<- ProgressUpdate, songs []models.Song) {
	if e.cache == nil || len(songs) == 0 {
		return
	}
	e.sendProgress(progress, saveResultsUpdate(len(songs)))
	if err := e.cache.SaveSongs(ctx, songs); err != nil {
		e.logger.Warn("failed to cache songs", "count", len(songs), "err", err)
	}
}

func (e *Engine) record(entry *models.HistoryEntry) {
	if e.history == nil {
		return
	}
	if err := e.history.Create(entry); err != nil {
		e.logger.Warn("failed to record history", "kind", entry.Kind(), "query", entry.Query(), "err", err)
	}
}
