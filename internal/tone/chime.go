package tone

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/shared"
)

// Chime plays a pre-rendered tone in the background.
//
// Ring returns immediately. A missing audio backend is logged at debug and skipped.
type Chime struct {
	player  Player
	wav     []byte
	timeout time.Duration
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewChime renders the tone for cfg once. A disabled config or nil player yields a silent chime.
func NewChime(cfg shared.ToneConfig, player Player, logger *log.Logger) *Chime {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	c := &Chime{logger: logger}
	if !cfg.Enabled || player == nil {
		return c
	}

	params := ParamsFromConfig(cfg)
	c.player = player
	c.wav = Synthesize(params)
	c.timeout = params.Duration + 3*time.Second
	return c
}

// Enabled reports whether Ring plays anything.
func (c *Chime) Enabled() bool { return c.player != nil }

func (c *Chime) Ring() {
	if c.player == nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Play(context.Background()); err != nil {
			if errors.Is(err, shared.ErrToneUnavailable) {
				c.logger.Debug("skipping completion tone", "error", err)
				return
			}
			c.logger.Warn("failed to play completion tone", "error", err)
		}
	}()
}

// Play plays the tone synchronously, bounded by the chime timeout.
func (c *Chime) Play(ctx context.Context) error {
	if c.player == nil {
		return shared.ErrToneUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.player.Play(ctx, c.wav)
}

// Wait blocks until every ring started so far has finished.
func (c *Chime) Wait() {
	c.wg.Wait()
}
