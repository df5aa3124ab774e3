package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/incense/internal/formatter"
	"github.com/desertthunder/incense/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TimerRun burns one stick without the TUI. Interrupting it leaves the log untouched.
func (r *Runner) TimerRun(ctx context.Context, cmd *cli.Command) error {
	minutes := int(cmd.Int("minutes"))
	if minutes == 0 {
		minutes = r.config.Timer.DefaultMinutes
	}

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	chime, err := r.newChime()
	if err != nil {
		return err
	}

	updates := make(chan tasks.Update, 64)
	scheduler := tasks.TickerScheduler{Interval: cmd.Duration("tick")}
	engine, err := r.newEngine(store, scheduler, chime, updates)
	if err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	defer engine.Close()

	if err := engine.Start(minutes); err != nil {
		return fmt.Errorf("failed to light incense: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("incense lit", "minutes", minutes)
	r.writePlain("→ Burning %s. Ctrl+C to stop without recording.\n", formatter.FormatMinutes(minutes))
	if q := engine.DailyQuote(); q != "" {
		r.writePlain("  “%s”\n", q)
	}

	for {
		select {
		case <-ctx.Done():
			engine.Close()
			remaining := engine.Countdown().State().RemainingSeconds
			r.logger.Warn("timer interrupted, session not recorded", "remaining", formatter.FormatClock(remaining))
			r.writePlainln("✗ Interrupted at %s. Session not recorded.", formatter.FormatClock(remaining))
			return nil
		case u := <-updates:
			if u.Running && u.RemainingSeconds > 0 && u.RemainingSeconds%60 == 0 {
				r.logger.Info("burning", "remaining", formatter.FormatClock(u.RemainingSeconds))
			}
		case err := <-engine.Completed():
			return r.finishTimer(engine, chime, err)
		}
	}
}

// finishTimer runs once the session has been recorded and the chime rung.
func (r *Runner) finishTimer(engine *tasks.FocusEngine, chime interface{ Wait() }, err error) error {
	chime.Wait()

	if err != nil {
		return fmt.Errorf("session completed but could not be saved: %w", err)
	}

	sum := engine.Sessions().Summary()
	r.writePlainln("✓ The incense has burned out. Session recorded.")
	r.writePlain("  Today: %d sessions, %d minutes\n", sum.TodaySessions, sum.TodayMinutes)
	r.writePlain("  Total: %d sessions, %d minutes\n", sum.TotalSessions, sum.TotalMinutes)
	return nil
}
