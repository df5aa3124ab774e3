package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/incense/internal/formatter"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/tasks"
	"github.com/urfave/cli/v3"
)

func (r *Runner) loadSessions() (*tasks.SessionLog, func(), error) {
	store, closeStore, err := r.openStore()
	if err != nil {
		return nil, nil, err
	}
	return tasks.NewSessionLog(store, r.clock, r.logger), closeStore, nil
}

// SessionsList prints the session log, most recent first.
func (r *Runner) SessionsList(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	}

	log, closeStore, err := r.loadSessions()
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := log.Sessions()
	if limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(sessions, true)
	}

	if len(sessions) == 0 {
		return r.writePlain("No incense burned yet...\n")
	}

	r.writePlainHeader(fmt.Sprintf("Ash piles (%d of %d)", len(sessions), log.TotalSessions()))
	for i, s := range sessions {
		r.writePlain("%3d. %s\n", i+1, formatter.FormatAshPile(s, nil))
	}
	return nil
}

// SessionsExport writes the session log in the requested format to a file or stdout.
func (r *Runner) SessionsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	output := cmd.String("output")
	render := cmd.Bool("render")

	if render && (format != formatter.FormatMarkdown || output != "") {
		return fmt.Errorf("%w: --render only applies to markdown written to stdout", shared.ErrInvalidFlag)
	}

	log, closeStore, err := r.loadSessions()
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := log.Sessions()

	if output != "" {
		path, err := formatter.WriteExport(format, sessions, output)
		if err != nil {
			return err
		}
		r.logger.Info("sessions exported", "format", format, "path", path, "count", len(sessions))
		return r.writePlain("✓ Exported %d sessions to %s\n", len(sessions), path)
	}

	data, err := formatter.Export(format, sessions)
	if err != nil {
		return err
	}
	if render {
		return r.writePlain("%s\n", formatter.RenderMarkdown(string(data), 80))
	}
	_, err = r.output.Write(data)
	return err
}

// Stats prints total and today's sessions and minutes.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	log, closeStore, err := r.loadSessions()
	if err != nil {
		return err
	}
	defer closeStore()

	sum := log.Summary()
	if cmd.Bool("json") {
		return r.writeJSON(sum, true)
	}

	return r.printSummary(sum)
}

func (r *Runner) printSummary(sum models.Summary) error {
	r.writePlainHeader("Incense")
	r.writePlain("Sessions:        %d\n", sum.TotalSessions)
	r.writePlain("Minutes focused: %d\n", sum.TotalMinutes)
	return r.writePlain("Today:           %d sessions, %d minutes\n", sum.TodaySessions, sum.TodayMinutes)
}
