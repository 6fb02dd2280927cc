package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/repositories"
	"github.com/desertthunder/songrec/internal/services"
	"github.com/desertthunder/songrec/internal/shared"
	"github.com/desertthunder/songrec/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	client  *services.Client
	db      *sql.DB
	songs   *repositories.SongRepository
	history *repositories.HistoryRepository
	cache   *repositories.SongCacheAdapter
	engine  *tasks.Engine
	logger  *log.Logger
	output  io.Writer
	open    func(string) error
	copy    func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// DB is optional; without it history and the song cache are disabled.
type RunnerOpts struct {
	Config *shared.Config
	Client *services.Client
	DB     *sql.DB
	Logger *log.Logger
	Output io.Writer
	Open   func(string) error
	Copy   func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Client == nil {
		var httpClient *http.Client
		if timeout := opts.Config.Server.Timeout(); timeout > 0 {
			httpClient = &http.Client{Timeout: timeout}
		}
		opts.Client = services.NewClient(services.ClientOpts{
			BaseURL:     opts.Config.Server.BaseURL,
			HTTPClient:  httpClient,
			RateLimit:   opts.Config.Server.RateLimit,
			SearchLimit: opts.Config.Search.Limit,
			Logger:      shared.WithLogger(opts.Logger, "component", "client"),
		})
	}

	r := &Runner{
		config: opts.Config,
		client: opts.Client,
		db:     opts.DB,
		logger: opts.Logger,
		output: opts.Output,
		open:   opts.Open,
		copy:   opts.Copy,
	}

	engineOpts := tasks.EngineOpts{Logger: shared.WithLogger(opts.Logger, "component", "engine")}
	if opts.DB != nil {
		r.songs = repositories.NewSongRepository(opts.DB)
		r.history = repositories.NewHistoryRepository(opts.DB)
		r.cache = repositories.NewSongCacheAdapter(r.songs, opts.Config.Search.Limit)
		engineOpts.Cache = r.cache
		engineOpts.History = r.history
	}
	r.engine = tasks.NewEngine(r.client, engineOpts)

	return r
}

// SetLogger replaces the logger used by the runner, the client and the engine.
// The new logger inherits the current level.
func (r *Runner) SetLogger(logger *log.Logger) {
	logger.SetLevel(r.logger.GetLevel())
	r.logger = logger
	r.client.SetLogger(shared.WithLogger(logger, "component", "client"))

	engineOpts := tasks.EngineOpts{Logger: shared.WithLogger(logger, "component", "engine")}
	if r.cache != nil {
		engineOpts.Cache = r.cache
		engineOpts.History = r.history
	}
	r.engine = tasks.NewEngine(r.client, engineOpts)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, recommendCommand, weatherCommand, lyricsCommand, songCommand,
		openCommand, historyCommand, cacheCommand, batchCommand, apiCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireDB reports a missing database for commands that only work on local data.
func (r *Runner) requireDB() error {
	if r.db == nil {
		return fmt.Errorf("%w: database not available, run 'songrec setup database'", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
