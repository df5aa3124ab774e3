// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// tuiCommand returns the top-level TUI command. It is also the app's default action.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive incense timer",
		Action:  r.TUI,
	}
}

// timerCommand runs a countdown without the TUI.
func timerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "timer",
		Usage: "Headless countdown operations",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Burn one stick of incense and record the session on completion",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "minutes",
						Aliases: []string{"m"},
						Usage:   "Duration in minutes (one of the configured options, default from config)",
					},
					&cli.DurationFlag{
						Name:   "tick",
						Usage:  "Length of one countdown second",
						Value:  time.Second,
						Hidden: true,
					},
				},
				Action: r.TimerRun,
			},
		},
	}
}

// sessionsCommand reads and exports the session log.
func sessionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sessions",
		Aliases: []string{"ash"},
		Usage:   "Completed session operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List completed sessions, most recent first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of sessions to show (0 for all)",
					},
				},
				Action: r.SessionsList,
			},
			{
				Name:  "export",
				Usage: "Export sessions to CSV, Markdown, text, JSON or YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text, json, yaml)",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
					&cli.BoolFlag{
						Name:  "render",
						Usage: "Render Markdown for the terminal (markdown format, stdout only)",
					},
				},
				Action: r.SessionsExport,
			},
		},
	}
}

// statsCommand prints session totals.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show total and today's sessions and minutes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}

// quoteCommand handles the daily reflection.
func quoteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "quote",
		Aliases: []string{"reflect"},
		Usage:   "Daily reflection operations",
		Commands: []*cli.Command{
			{
				Name:   "today",
				Usage:  "Show today's reflection, picking one if the day changed",
				Action: r.QuoteToday,
			},
			{
				Name:   "list",
				Usage:  "List every reflection in the pool",
				Action: r.QuoteList,
			},
		},
	}
}

// setupCommand handles setup operations for the database and config file.
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
				Usage: "Write a config.toml with the default settings",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path", Value: "config.toml"},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// storeCommand inspects the key-value store.
func storeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Inspect the local key-value store",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the raw value stored under a key",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Action: r.StoreGet,
			},
			{
				Name:  "keys",
				Usage: "List stored keys",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.StoreKeys,
			},
			{
				Name:  "delete",
				Usage: "Remove a key, e.g. to clear the cached daily quote",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Action: r.StoreDelete,
			},
		},
	}
}

// toneCommand handles the completion tone.
func toneCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tone",
		Usage: "Completion tone operations",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play the completion tone and wait for it to finish",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "player",
						Usage: "Override the configured player (auto, bell)",
					},
				},
				Action: r.TonePlay,
			},
			{
				Name:  "write",
				Usage: "Write the completion tone to a WAV file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path", Value: "incense.wav"},
				},
				Action: r.ToneWrite,
			},
		},
	}
}

// serveCommand runs the read-only local dashboard.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a read-only dashboard of the local store over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (default from config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (default from config)",
			},
		},
		Action: r.Serve,
	}
}
