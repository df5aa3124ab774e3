package main

import (
	"context"
	"os"

	"github.com/desertthunder/incense/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "incense",
		Usage:    "A focus timer that burns incense in your terminal",
		Version:  "0.1.0",
		Writer:   r.output,
		Flags:    globalFlags(),
		Before:   r.Before,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
