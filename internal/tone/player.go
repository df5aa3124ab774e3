package tone

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/desertthunder/incense/internal/shared"
)

var (
	getRuntime = func() string { return runtime.GOOS }
	lookPath   = exec.LookPath
)

// Player plays a WAV file.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// NewPlayer returns the player named in the [tone] config: "auto", "bell", or "none".
//
// "none" returns a nil player.
func NewPlayer(name string, bell io.Writer) (Player, error) {
	switch name {
	case "", "auto":
		return CommandPlayer{}, nil
	case "bell":
		return BellPlayer{W: bell}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown tone player %q", shared.ErrInvalidConfig, name)
	}
}

// CommandPlayer hands the WAV to the platform's audio command.
//
// Supports macOS (afplay), Linux (paplay or aplay), and Windows (PowerShell SoundPlayer).
type CommandPlayer struct{}

func (CommandPlayer) Play(ctx context.Context, wav []byte) error {
	rt := getRuntime()
	switch rt {
	case "darwin":
		return playFile(ctx, wav, "afplay", func(path string) []string {
			return []string{path}
		})
	case "linux":
		if _, err := lookPath("paplay"); err == nil {
			return playStdin(ctx, wav, "paplay")
		}
		return playStdin(ctx, wav, "aplay", "-q", "-")
	case "windows":
		return playFile(ctx, wav, "powershell", func(path string) []string {
			script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)
			return []string{"-NoProfile", "-NonInteractive", "-Command", script}
		})
	default:
		return fmt.Errorf("%w: unsupported platform: %s", shared.ErrToneUnavailable, rt)
	}
}

func playStdin(ctx context.Context, wav []byte, name string, args ...string) error {
	if _, err := lookPath(name); err != nil {
		return fmt.Errorf("%w: %s not found", shared.ErrToneUnavailable, name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(wav)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to play tone with %s: %w", name, err)
	}
	return nil
}

// playFile writes the WAV to a temp file for players that cannot read stdin.
func playFile(ctx context.Context, wav []byte, name string, args func(path string) []string) error {
	if _, err := lookPath(name); err != nil {
		return fmt.Errorf("%w: %s not found", shared.ErrToneUnavailable, name)
	}

	f, err := os.CreateTemp("", "incense-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create tone file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("failed to write tone file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write tone file: %w", err)
	}

	cmd := exec.CommandContext(ctx, name, args(f.Name())...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to play tone with %s: %w", name, err)
	}
	return nil
}

// BellPlayer rings the terminal bell instead of playing audio.
type BellPlayer struct {
	W io.Writer // defaults to [os.Stdout]
}

func (b BellPlayer) Play(_ context.Context, _ []byte) error {
	w := b.W
	if w == nil {
		w = os.Stdout
	}
	if _, err := io.WriteString(w, "\a"); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrToneUnavailable, err)
	}
	return nil
}
