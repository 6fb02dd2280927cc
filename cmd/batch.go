package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/formatter"
	"github.com/desertthunder/songrec/internal/shared"
	"github.com/desertthunder/songrec/internal/tasks"
)

// Batch exports recommendations for every seed given as arguments or in --file.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	seeds := cmd.Args().Slice()
	if path := cmd.String("file"); path != "" {
		fromFile, err := readSeeds(path)
		if err != nil {
			return err
		}
		seeds = append(seeds, fromFile...)
	}
	if len(seeds) == 0 {
		return fmt.Errorf("%w: pass seed songs as arguments or with --file", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.BatchOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	r.writePlainHeader(fmt.Sprintf("Batch export: %d songs", len(seeds)))

	progress := make(chan tasks.ProgressUpdate, 64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Batch(ctx, progress, seeds, opts)
	close(progress)
	<-printed

	if result != nil {
		r.writePlainln("✓ %d succeeded, ✗ %d failed", result.Succeeded, result.Failed)
		r.writePlain("Output: %s\n", result.OutputDirectory)
		if result.ManifestPath != "" {
			r.writePlain("Manifest: %s\n", result.ManifestPath)
		}
	}
	return err
}

// readSeeds reads one seed per line, skipping blank lines and # comments.
func readSeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	var seeds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return seeds, nil
}
