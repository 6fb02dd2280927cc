package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/formatter"
	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/search"
	"github.com/desertthunder/songrec/internal/services"
	"github.com/desertthunder/songrec/internal/shared"
)

// searcher picks the song source for search commands: the local cache when offline,
// otherwise the server behind an in-memory LRU that feeds the local cache.
func (r *Runner) searcher(offline bool) (search.Searcher[models.Song], error) {
	if offline {
		if err := r.requireDB(); err != nil {
			return nil, err
		}
		return r.cache, nil
	}

	if r.cache == nil {
		return services.NewCachedSearcher(r.client, r.config.Search.CacheSize, nil, r.logger), nil
	}
	return services.NewCachedSearcher(r.client, r.config.Search.CacheSize, r.cache, r.logger), nil
}

// Search runs one search and prints the matching song names.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	s, err := r.searcher(cmd.Bool("offline"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.searchTimeout())
	defer cancel()

	songs, err := s.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	r.engine.RecordSearch(query, len(songs), "")

	if cmd.Bool("json") {
		names := make([]string, len(songs))
		for i, song := range songs {
			names[i] = song.Name
		}
		return r.writeJSON(names, false)
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found for %q\n", query)
	}

	for i, song := range songs {
		r.writePlain("%2d. %s\n", i+1, song.Name)
	}
	return nil
}

// Recommend prints recommendations for a song, optionally saving them to the output directory.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	seed := strings.TrimSpace(cmd.StringArg("song"))
	if seed == "" {
		return fmt.Errorf("%w: song name is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	res, err := r.engine.Recommend(ctx, nil, seed)
	if err != nil {
		return fmt.Errorf("failed to get recommendations for %q: %w", seed, err)
	}

	data, err := formatter.Export(formatter.Recommendations{Seed: seed, Songs: res.Songs}, format)
	if err != nil {
		return err
	}

	if format == formatter.FormatText {
		r.writePlainHeader(fmt.Sprintf("Songs like %s", seed))
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cmd.Bool("save") {
		path, err := formatter.WriteFile(r.config.Output.Directory, formatter.RecommendationsFilename(seed, format), data)
		if err != nil {
			return err
		}
		r.logger.Info("recommendations saved", "file", path)
		r.writePlainln("✓ Saved to %s", path)
	}
	return nil
}

// Weather prints recommendations matched to the weather at --lat/--lon.
func (r *Runner) Weather(ctx context.Context, cmd *cli.Command) error {
	coords := models.Coordinates{Latitude: cmd.Float("lat"), Longitude: cmd.Float("lon")}

	res, err := r.engine.Weather(ctx, nil, coords)
	if err != nil {
		return fmt.Errorf("failed to get weather recommendations: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res, true)
	}

	r.writePlainHeader("Weather Recommendations")
	return r.writePlain("%s", formatter.WeatherToText(res))
}

// Open opens (or prints, or copies) the streaming search link for a song.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	svc, err := shared.ParseStreamingService(cmd.String("service"))
	if err != nil {
		return err
	}

	url := shared.SearchURL(svc, cmd.String("song"), cmd.String("artist"))

	switch {
	case cmd.Bool("print"):
		return r.writePlain("%s\n", url)
	case cmd.Bool("copy"):
		if err := r.copy(url); err != nil {
			return fmt.Errorf("failed to copy link: %w", err)
		}
		return r.writePlain("✓ Copied %s\n", url)
	}

	r.logger.Info("opening browser", "service", svc, "url", url)
	if err := r.open(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func (r *Runner) searchTimeout() time.Duration {
	if t := r.config.Search.Timeout(); t > 0 {
		return t
	}
	return search.DefaultTimeout
}
