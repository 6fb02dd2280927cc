// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml with default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// searchCommand searches the server's song catalog once.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search the song catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Search songs cached locally instead of the server",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// recommendCommand fetches recommendations for a seed song.
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Recommend songs similar to a song in the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "song"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (txt, json, csv, markdown)",
				Value:   "txt",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Also write the output to the configured output directory",
			},
		},
		Action: r.Recommend,
	}
}

// weatherCommand fetches recommendations matching the weather at a location.
func weatherCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "weather",
		Usage: "Recommend songs for the current weather at a location",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "lat",
				Usage:    "Latitude",
				Required: true,
			},
			&cli.FloatFlag{
				Name:     "lon",
				Usage:    "Longitude",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Weather,
	}
}

// lyricsCommand generates song lyrics.
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Generate song lyrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "theme",
				Aliases:  []string{"t"},
				Usage:    "What the song is about",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "genre",
				Usage: "Song genre",
				Value: "pop",
			},
			&cli.StringFlag{
				Name:  "mood",
				Usage: "Song mood",
				Value: "happy",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Lyrics language",
				Value: "English",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the lyrics to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the lyrics to the configured output directory",
			},
		},
		Action: r.Lyrics,
	}
}

// songCommand generates a song description for AI music platforms.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Generate a song description for AI music platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "prompt",
				Aliases:  []string{"p"},
				Usage:    "Describe the song",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "duration",
				Usage: "Target duration",
				Value: "3:00",
			},
			&cli.StringFlag{
				Name:  "tempo",
				Usage: "Tempo (slow, medium, fast)",
				Value: "medium",
			},
			&cli.StringFlag{
				Name:  "vocals",
				Usage: "Vocal style",
				Value: "any",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the description to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the description to the configured output directory",
			},
		},
		Action: r.Song,
	}
}

// openCommand opens a song's search page on a streaming service.
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open a song in Spotify or YouTube Music",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "song",
				Usage:    "Song name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "artist",
				Usage: "Artist name",
			},
			&cli.StringFlag{
				Name:  "service",
				Usage: "Streaming service (spotify, youtube)",
				Value: "spotify",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the link instead of opening it",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the link to the clipboard instead of opening it",
			},
		},
		Action: r.Open,
	}
}

// historyCommand manages the local search and recommendation history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Search and recommendation history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent history",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Only show one kind (search, select, recommend, weather)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all history",
				Action: r.HistoryClear,
			},
		},
	}
}

// cacheCommand manages songs cached locally for offline search.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Local song cache used for offline search",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Cache the server's full song catalog",
				Action: r.CacheSync,
			},
			{
				Name:  "list",
				Usage: "List cached songs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs",
						Value: 50,
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Only songs by this artist",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached songs",
				Action: r.CacheClear,
			},
		},
	}
}

// batchCommand exports recommendations for many seed songs.
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Export recommendations for many songs",
		ArgsUsage: "[song...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "File with one seed song per line (# starts a comment)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (json, csv, markdown, txt)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: recommendations_<epoch>)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent requests",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second",
				Value: 5,
			},
		},
		Action: r.Batch,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the recommendation server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// serveCommand runs the offline search server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve song search from the local cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive search.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive search",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Search songs cached locally instead of the server",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log file for the session",
				Value: "./tmp/songrec-tui.log",
			},
		},
		Action: r.TUI,
	}
}
