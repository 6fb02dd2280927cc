package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/server"
	"github.com/desertthunder/songrec/internal/shared"
)

// Serve runs the offline search server on the local song cache until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	cfg := r.config.Offline
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	count, err := r.songs.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		r.logger.Warn("song cache is empty, run 'songrec cache sync' first")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := shared.WithLogger(r.logger, "component", "server")
	r.writePlain("Serving %d cached songs on http://%s\n", count, cfg.Addr())

	if err := server.Serve(ctx, cfg.Addr(), server.NewOfflineRouter(r.cache, logger), logger); err != nil {
		return fmt.Errorf("offline server failed: %w", err)
	}
	return nil
}
