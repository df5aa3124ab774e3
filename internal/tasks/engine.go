package tasks

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/repositories"
	"github.com/desertthunder/incense/internal/shared"
)

// Chime plays the completion tone. Ring must not block.
type Chime interface {
	Ring()
}

type silentChime struct{}

func (silentChime) Ring() {}

// Snapshot is everything the presentation layer renders.
type Snapshot struct {
	RemainingSeconds int
	SelectedMinutes  int
	Running          bool
	Phase            Phase
	BurnProgress     float64
	Sessions         []models.Session
	Summary          models.Summary
	DailyQuote       string
}

// EngineOpts contains the collaborators of a [FocusEngine].
type EngineOpts struct {
	Store          repositories.Store
	Clock          shared.Clock
	Rand           RandSource
	Scheduler      Scheduler
	Chime          Chime
	Logger         *log.Logger
	Durations      []int
	DefaultMinutes int
	Quotes         []string
	Updates        chan<- Update
}

// FocusEngine is the explicit application state owned by the presentation layer.
//
// It wires countdown completion to the session log and the chime, and holds the daily
// quote loaded at startup.
type FocusEngine struct {
	countdown *Countdown
	sessions  *SessionLog
	quotes    *QuoteRotator
	pool      []string
	chime     Chime
	logger    *log.Logger
	completed chan error

	mu         sync.RWMutex
	dailyQuote string
	lastErr    error
}

// NewFocusEngine loads the session log and today's quote from the store and prepares an Idle countdown.
func NewFocusEngine(opts EngineOpts) (*FocusEngine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: no store configured", shared.ErrStoreUnavailable)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Chime == nil {
		opts.Chime = silentChime{}
	}

	pool := opts.Quotes
	if len(pool) == 0 {
		pool = DefaultQuotes
	}

	e := &FocusEngine{
		sessions:  NewSessionLog(opts.Store, opts.Clock, opts.Logger),
		quotes:    NewQuoteRotator(opts.Store, opts.Clock, opts.Rand, opts.Logger),
		pool:      slices.Clone(pool),
		chime:     opts.Chime,
		logger:    opts.Logger,
		completed: make(chan error, 1),
	}

	countdown, err := NewCountdown(CountdownOpts{
		Durations:      opts.Durations,
		DefaultMinutes: opts.DefaultMinutes,
		Scheduler:      opts.Scheduler,
		OnComplete:     e.complete,
		Updates:        opts.Updates,
	})
	if err != nil {
		return nil, err
	}
	e.countdown = countdown

	if err := e.RefreshQuote(); err != nil {
		return nil, err
	}

	return e, nil
}

// complete records the finished session and rings; a failed write still rings.
// The outcome is published on [FocusEngine.Completed] only after both have happened.
func (e *FocusEngine) complete(minutes int) {
	_, err := e.sessions.Record(minutes)
	if err != nil {
		e.logger.Error("failed to record session", "minutes", minutes, "error", err)
	}
	e.setErr(err)
	e.chime.Ring()

	// keep only the latest unread outcome
	select {
	case <-e.completed:
	default:
	}
	select {
	case e.completed <- err:
	default:
	}
}

// Completed receives the record error (nil on success) of each completed session once
// it has been persisted and the chime rung. An unread outcome is replaced by the next one.
func (e *FocusEngine) Completed() <-chan error { return e.completed }

// RefreshQuote re-evaluates the daily quote, picking a new one after midnight.
func (e *FocusEngine) RefreshQuote() error {
	quote, err := e.quotes.QuoteForToday(e.pool)
	if err != nil {
		return fmt.Errorf("failed to load daily quote: %w", err)
	}

	e.mu.Lock()
	e.dailyQuote = quote
	e.mu.Unlock()
	return nil
}

// DailyQuote returns the quote loaded by the last refresh.
func (e *FocusEngine) DailyQuote() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dailyQuote
}

// LastError returns the error from the most recent completion, if any.
func (e *FocusEngine) LastError() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

func (e *FocusEngine) setErr(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

// Snapshot returns the render state.
func (e *FocusEngine) Snapshot() Snapshot {
	state := e.countdown.State()
	return Snapshot{
		RemainingSeconds: state.RemainingSeconds,
		SelectedMinutes:  state.SelectedMinutes,
		Running:          state.Running,
		Phase:            state.Phase,
		BurnProgress:     e.countdown.BurnProgress(),
		Sessions:         e.sessions.Sessions(),
		Summary:          e.sessions.Summary(),
		DailyQuote:       e.DailyQuote(),
	}
}

func (e *FocusEngine) Countdown() *Countdown { return e.countdown }
func (e *FocusEngine) Sessions() *SessionLog { return e.sessions }
func (e *FocusEngine) Quotes() *QuoteRotator { return e.quotes }
func (e *FocusEngine) QuotePool() []string   { return slices.Clone(e.pool) }
func (e *FocusEngine) Durations() []int      { return e.countdown.Durations() }

func (e *FocusEngine) Start(minutes int) error  { return e.countdown.Start(minutes) }
func (e *FocusEngine) Select(minutes int) error { return e.countdown.Select(minutes) }
func (e *FocusEngine) Resume()                  { e.countdown.Resume() }
func (e *FocusEngine) Pause()                   { e.countdown.Pause() }
func (e *FocusEngine) Tick()                    { e.countdown.Tick() }
func (e *FocusEngine) Close()                   { e.countdown.Close() }

// Reset returns the countdown to Idle and refreshes the quote for a new session.
func (e *FocusEngine) Reset() {
	e.countdown.Reset()
	if err := e.RefreshQuote(); err != nil {
		e.logger.Warn("failed to refresh daily quote", "error", err)
	}
}

// Toggle starts, pauses, or resumes depending on the phase. Depleted is left for Reset.
func (e *FocusEngine) Toggle() error {
	state := e.countdown.State()
	switch state.Phase {
	case Idle:
		return e.countdown.Start(state.SelectedMinutes)
	case Running:
		e.countdown.Pause()
	case Paused:
		e.countdown.Resume()
	}
	return nil
}
