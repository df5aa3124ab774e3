package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive incense timer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(r.config.Log.Path)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()

	fileLogger.SetLevel(r.logger.GetLevel())
	stderrLogger := r.logger
	r.SetLogger(fileLogger)
	defer r.SetLogger(stderrLogger)

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	chime, err := r.newChime()
	if err != nil {
		return err
	}

	scheduler := ui.NewScheduler()
	engine, err := r.newEngine(store, scheduler, chime, nil)
	if err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	defer engine.Close()

	model := ui.NewModel(engine, scheduler)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
