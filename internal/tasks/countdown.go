package tasks

import (
	"fmt"
	"slices"
	"sync"

	"github.com/desertthunder/incense/internal/shared"
)

// Phase is the countdown's position in its state machine.
type Phase int

const (
	Idle     Phase = iota // full time, not running
	Running               // decrementing
	Paused                // stopped part way
	Depleted              // reached zero, waiting for reset
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Depleted:
		return "depleted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DefaultDurations are the minute options offered when none are configured.
var DefaultDurations = []int{15, 25, 45}

// State is a point-in-time copy of the countdown.
type State struct {
	RemainingSeconds int
	SelectedMinutes  int
	Running          bool
	Phase            Phase
}

// FullSeconds is the selected duration in seconds.
func (s State) FullSeconds() int { return s.SelectedMinutes * 60 }

// Update is sent on the optional updates channel after every state change.
type Update State

// CountdownOpts configures a [Countdown].
type CountdownOpts struct {
	Durations      []int             // allowed minute options, defaults to [DefaultDurations]
	DefaultMinutes int               // initial selection, defaults to the middle option
	Scheduler      Scheduler         // defaults to a one-second [TickerScheduler]
	OnComplete     func(minutes int) // fired once per Running -> Depleted transition
	Updates        chan<- Update     // optional, never blocks
}

// Countdown is the timer state machine: Idle -> Running <-> Paused, Running -> Depleted -> Idle.
//
// Exactly one tick driver is active while running. Every driver is tagged with a run
// generation; ticks from a cancelled driver are dropped even when already in flight.
type Countdown struct {
	mu         sync.Mutex
	durations  []int
	selected   int
	remaining  int
	running    bool
	scheduler  Scheduler
	cancel     func()
	run        uint64
	onComplete func(int)
	updates    chan<- Update
}

// NewCountdown creates an Idle countdown at the default selection's full time.
func NewCountdown(opts CountdownOpts) (*Countdown, error) {
	durations := opts.Durations
	if len(durations) == 0 {
		durations = DefaultDurations
	}
	for _, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("%w: %d", shared.ErrInvalidDuration, d)
		}
	}

	selected := opts.DefaultMinutes
	if selected == 0 {
		selected = durations[len(durations)/2]
	}
	if !slices.Contains(durations, selected) {
		return nil, fmt.Errorf("%w: default %d not in %v", shared.ErrInvalidDuration, selected, durations)
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = NewTickerScheduler()
	}

	return &Countdown{
		durations:  slices.Clone(durations),
		selected:   selected,
		remaining:  selected * 60,
		scheduler:  scheduler,
		onComplete: opts.OnComplete,
		updates:    opts.Updates,
	}, nil
}

// Durations returns the allowed minute options.
func (c *Countdown) Durations() []int {
	return slices.Clone(c.durations)
}

// State returns a copy of the current state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Phase returns the current phase.
func (c *Countdown) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseLocked()
}

// BurnProgress returns the burned share of the stick in [0, 1].
func (c *Countdown) BurnProgress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	full := c.selected * 60
	return float64(full-c.remaining) / float64(full)
}

// Select changes the duration. Only allowed while Idle.
func (c *Countdown) Select(minutes int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.Contains(c.durations, minutes) {
		return fmt.Errorf("%w: %d", shared.ErrInvalidDuration, minutes)
	}
	if c.phaseLocked() != Idle {
		return shared.ErrDurationLocked
	}

	c.selected = minutes
	c.remaining = minutes * 60
	c.notifyLocked()
	return nil
}

// Start begins a fresh countdown of minutes from Idle or Depleted.
// From Paused it resumes with the remaining time kept; while Running it is a no-op.
func (c *Countdown) Start(minutes int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phaseLocked() {
	case Running:
		return nil
	case Paused:
		c.resumeLocked()
		return nil
	}

	if !slices.Contains(c.durations, minutes) {
		return fmt.Errorf("%w: %d", shared.ErrInvalidDuration, minutes)
	}

	c.selected = minutes
	c.remaining = minutes * 60
	c.resumeLocked()
	return nil
}

// Resume continues a paused countdown. Other phases are unchanged.
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phaseLocked() == Paused {
		c.resumeLocked()
	}
}

// Pause stops the driver and keeps the remaining time.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	c.disarmLocked()
	c.notifyLocked()
}

// Reset stops the driver and returns to Idle at full time.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = false
	c.disarmLocked()
	c.remaining = c.selected * 60
	c.notifyLocked()
}

// Tick applies one elapsed second. It is a no-op unless running with time left.
func (c *Countdown) Tick() {
	c.advance(0, false)
}

// Close stops the driver for teardown. The countdown is left paused.
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = false
	c.disarmLocked()
}

func (c *Countdown) advance(run uint64, fromDriver bool) {
	c.mu.Lock()

	if (fromDriver && run != c.run) || !c.running || c.remaining == 0 {
		c.mu.Unlock()
		return
	}

	c.remaining--
	completed := c.remaining == 0
	if completed {
		c.running = false
		c.disarmLocked()
	}
	minutes := c.selected
	c.notifyLocked()
	c.mu.Unlock()

	if completed && c.onComplete != nil {
		c.onComplete(minutes)
	}
}

func (c *Countdown) resumeLocked() {
	c.running = true
	c.disarmLocked()
	run := c.run
	c.cancel = c.scheduler.Schedule(func() { c.advance(run, true) })
	c.notifyLocked()
}

// disarmLocked cancels the active driver and invalidates its generation.
func (c *Countdown) disarmLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.run++
}

func (c *Countdown) phaseLocked() Phase {
	switch {
	case c.running:
		return Running
	case c.remaining == 0:
		return Depleted
	case c.remaining == c.selected*60:
		return Idle
	default:
		return Paused
	}
}

func (c *Countdown) stateLocked() State {
	return State{
		RemainingSeconds: c.remaining,
		SelectedMinutes:  c.selected,
		Running:          c.running,
		Phase:            c.phaseLocked(),
	}
}

// notifyLocked sends the current state without blocking.
func (c *Countdown) notifyLocked() {
	if c.updates == nil {
		return
	}
	select {
	case c.updates <- Update(c.stateLocked()):
	default:
	}
}
