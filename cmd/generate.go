package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/formatter"
	"github.com/desertthunder/songrec/internal/models"
)

// Lyrics generates lyrics and prints them, optionally copying or saving the text.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	req := models.LyricsRequest{
		Theme:    cmd.String("theme"),
		Genre:    cmd.String("genre"),
		Mood:     cmd.String("mood"),
		Language: cmd.String("language"),
	}

	r.logger.Info("generating lyrics", "theme", req.Theme, "genre", req.Genre, "mood", req.Mood, "language", req.Language)

	lyrics, err := r.client.GenerateLyrics(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate lyrics: %w", err)
	}

	r.writePlainHeader(fmt.Sprintf("%s · %s · %s", lyrics.Theme, lyrics.Genre, lyrics.Mood))
	r.writePlain("%s\n", lyrics.Text)

	return r.deliver(lyrics.Text, formatter.LyricsFilename(req.Theme, req.Genre), cmd.Bool("copy"), cmd.Bool("save"))
}

// Song generates a song description for AI music platforms.
func (r *Runner) Song(ctx context.Context, cmd *cli.Command) error {
	req := models.SongRequest{
		Prompt:   cmd.String("prompt"),
		Duration: cmd.String("duration"),
		Tempo:    cmd.String("tempo"),
		Vocals:   cmd.String("vocals"),
	}

	r.logger.Info("generating song description", "duration", req.Duration, "tempo", req.Tempo, "vocals", req.Vocals)

	desc, err := r.client.GenerateSong(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate song description: %w", err)
	}

	r.writePlainHeader("Song Description")
	r.writePlain("%s\n", desc.Text)

	return r.deliver(desc.Text, formatter.SongFilename(time.Now()), cmd.Bool("copy"), cmd.Bool("save"))
}

// deliver copies text to the clipboard and/or writes it to name in the output directory.
func (r *Runner) deliver(text, name string, copyText, save bool) error {
	if copyText {
		if err := r.copy(text); err != nil {
			r.logger.Warn("failed to copy to clipboard", "err", err)
			r.writePlainln("✗ Could not copy to clipboard: %v", err)
		} else {
			r.writePlainln("✓ Copied to clipboard")
		}
	}

	if save {
		path, err := formatter.WriteFile(r.config.Output.Directory, name, []byte(text))
		if err != nil {
			return err
		}
		r.logger.Info("saved", "file", path)
		r.writePlainln("✓ Saved to %s", path)
	}
	return nil
}
