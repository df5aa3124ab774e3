package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/tone"
	"github.com/urfave/cli/v3"
)

// TonePlay plays the completion tone synchronously so playback problems surface as errors.
func (r *Runner) TonePlay(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Tone
	cfg.Enabled = true
	if p := cmd.String("player"); p != "" {
		cfg.Player = p
	}

	player, err := tone.NewPlayer(cfg.Player, r.bell)
	if err != nil {
		return err
	}
	if player == nil {
		return fmt.Errorf("%w: tone.player is none", shared.ErrToneUnavailable)
	}

	r.logger.Info("playing completion tone", "frequency", cfg.Frequency, "duration", cfg.Duration(), "player", cfg.Player)
	if err := tone.NewChime(cfg, player, r.logger).Play(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Tone played\n")
}

// ToneWrite saves the completion tone as a WAV file.
func (r *Runner) ToneWrite(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = "incense.wav"
	}

	wav := tone.Synthesize(tone.ParamsFromConfig(r.config.Tone))
	if err := os.WriteFile(path, wav, 0644); err != nil {
		return fmt.Errorf("failed to write tone file: %w", err)
	}

	return r.writePlain("✓ Tone written to %s (%d bytes)\n", path, len(wav))
}
