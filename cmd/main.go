package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/shared"
)

// configPath returns $SONGREC_CONFIG or config.toml in the working directory.
func configPath() string {
	if p := os.Getenv("SONGREC_CONFIG"); p != "" {
		return p
	}
	return "config.toml"
}

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("SONGREC_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if path := configPath(); fileExists(path) {
		if loadedConfig, err := shared.LoadConfig(path); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", path, "err", err)
		}
	}
	if url := os.Getenv("SONGREC_SERVER"); url != "" {
		config.Server.BaseURL = url
	}

	var db *sql.DB
	if opened, err := shared.OpenDatabase(config.Database); err == nil {
		db = opened
		defer db.Close()
	} else {
		logger.Debug("database unavailable, history and cache disabled", "path", config.Database.Path, "err", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		DB:     db,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "songrec",
		Usage:    "Search songs, get recommendations and generate lyrics from a music recommendation server",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		if db != nil {
			db.Close()
		}
		logger.Fatalf("application error: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
