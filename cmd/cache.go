package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/models"
)

// CacheSync stores the server's full catalog in the local song cache so search works offline.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	r.logger.Info("fetching song catalog", "server", r.client.BaseURL())

	names, err := r.client.ListSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch song catalog: %w", err)
	}

	if err := r.cache.SaveSongs(ctx, models.SongsFromNames(names)); err != nil {
		return fmt.Errorf("failed to cache songs: %w", err)
	}

	total, err := r.songs.Count()
	if err != nil {
		return err
	}

	r.logger.Infof("cached %d songs", len(names))
	return r.writePlain("✓ Synced %d songs (%d cached)\n", len(names), total)
}

// CacheList prints cached songs in the order they were first seen.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	cached, err := r.songs.List(map[string]any{
		"artist": cmd.String("artist"),
		"limit":  cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if len(cached) == 0 {
		return r.writePlain("No cached songs\n")
	}

	for i, c := range cached {
		song := c.Song()
		if song.Artist == "" {
			r.writePlain("%3d. %s\n", i+1, song.Name)
			continue
		}
		r.writePlain("%3d. %s · %s\n", i+1, song.Name, song.Artist)
	}
	return nil
}

// CacheClear removes every cached song.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	n, err := r.songs.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("song cache cleared", "songs", n)
	return r.writePlain("✓ Removed %d cached songs\n", n)
}
