package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/repositories"
	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/tasks"
	"github.com/desertthunder/incense/internal/tone"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	bell   io.Writer
	clock  shared.Clock
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from --config when the app starts.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Bell   io.Writer
	Clock  shared.Clock
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Bell == nil {
		opts.Bell = opts.Output
	}
	if opts.Clock == nil {
		opts.Clock = shared.SystemClock{}
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		bell:   opts.Bell,
		clock:  opts.Clock,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, timerCommand, sessionsCommand, statsCommand, quoteCommand,
		setupCommand, storeCommand, toneCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration and applies the log level ahead of every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil || cmd.IsSet("config") {
		config, err := shared.LoadOrDefault(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	return ctx, nil
}

// SetLogger replaces the logger, e.g. to keep log lines off a TUI's terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openStore opens and migrates the configured database.
//
// The returned close func must be called when the command is done.
func (r *Runner) openStore() (*repositories.SQLiteStore, func(), error) {
	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}

	r.logger.Debug("opened store", "path", r.config.Database.Path)
	closeDB := func() {
		if err := db.Close(); err != nil {
			r.logger.Warn("failed to close database", "error", err)
		}
	}
	return repositories.NewSQLiteStore(db), closeDB, nil
}

// openDB opens the configured database without migrating it, for maintenance commands.
func (r *Runner) openDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

func (r *Runner) newChime() (*tone.Chime, error) {
	player, err := tone.NewPlayer(r.config.Tone.Player, r.bell)
	if err != nil {
		return nil, err
	}
	return tone.NewChime(r.config.Tone, player, r.logger), nil
}

func (r *Runner) quotePool() []string {
	if len(r.config.Quotes.Pool) > 0 {
		return r.config.Quotes.Pool
	}
	return tasks.DefaultQuotes
}

func (r *Runner) newEngine(store repositories.Store, scheduler tasks.Scheduler, chime tasks.Chime, updates chan<- tasks.Update) (*tasks.FocusEngine, error) {
	return tasks.NewFocusEngine(tasks.EngineOpts{
		Store:          store,
		Clock:          r.clock,
		Scheduler:      scheduler,
		Chime:          chime,
		Logger:         r.logger,
		Durations:      r.config.Timer.Durations,
		DefaultMinutes: r.config.Timer.DefaultMinutes,
		Quotes:         r.quotePool(),
		Updates:        updates,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
