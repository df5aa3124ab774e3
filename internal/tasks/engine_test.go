package tasks

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
	tu "github.com/desertthunder/incense/internal/testing"
)

type engineFixture struct {
	engine    *FocusEngine
	store     *tu.MapStore
	clock     *tu.FixedClock
	scheduler *tu.ManualScheduler
	chime     *tu.ChimeCounter
}

func newTestEngine(t *testing.T, store *tu.MapStore) engineFixture {
	t.Helper()
	if store == nil {
		store = tu.NewMapStore()
	}
	f := engineFixture{
		store:     store,
		clock:     tu.NewFixedClock(testNow),
		scheduler: &tu.ManualScheduler{},
		chime:     &tu.ChimeCounter{},
	}

	engine, err := NewFocusEngine(EngineOpts{
		Store:     f.store,
		Clock:     f.clock,
		Rand:      &tu.SeqRand{Values: []int{0}},
		Scheduler: f.scheduler,
		Chime:     f.chime,
		Logger:    shared.NewLogger(io.Discard),
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(engine.Close)
	f.engine = engine
	return f
}

func TestNewFocusEngine(t *testing.T) {
	t.Run("requires a store", func(t *testing.T) {
		_, err := NewFocusEngine(EngineOpts{})
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("initial snapshot", func(t *testing.T) {
		f := newTestEngine(t, nil)
		snap := f.engine.Snapshot()

		if snap.Phase != Idle || snap.Running {
			t.Errorf("expected idle, got %s", snap.Phase)
		}
		if snap.SelectedMinutes != 25 || snap.RemainingSeconds != 1500 {
			t.Errorf("expected 25:00, got %d minutes %d seconds", snap.SelectedMinutes, snap.RemainingSeconds)
		}
		if len(snap.Sessions) != 0 {
			t.Errorf("expected no sessions, got %d", len(snap.Sessions))
		}
		if snap.DailyQuote != DefaultQuotes[0] {
			t.Errorf("expected %q, got %q", DefaultQuotes[0], snap.DailyQuote)
		}
	})

	t.Run("loads persisted sessions", func(t *testing.T) {
		store := tu.NewMapStore()
		store.Data[models.SessionsKey] = `[{"id":"1","duration":45,"completedAt":"2026-10-18T10:00:00Z"}]`
		f := newTestEngine(t, store)

		if got := f.engine.Snapshot().Summary.TotalMinutes; got != 45 {
			t.Errorf("expected 45 minutes, got %d", got)
		}
	})

	t.Run("custom quote pool", func(t *testing.T) {
		engine, err := NewFocusEngine(EngineOpts{
			Store:  tu.NewMapStore(),
			Rand:   &tu.SeqRand{Values: []int{1}},
			Quotes: []string{"first", "second"},
			Logger: shared.NewLogger(io.Discard),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer engine.Close()

		if engine.DailyQuote() != "second" {
			t.Errorf("expected second, got %q", engine.DailyQuote())
		}
	})

	t.Run("invalid default duration", func(t *testing.T) {
		_, err := NewFocusEngine(EngineOpts{
			Store:          tu.NewMapStore(),
			DefaultMinutes: 30,
			Logger:         shared.NewLogger(io.Discard),
		})
		if !errors.Is(err, shared.ErrInvalidDuration) {
			t.Errorf("expected ErrInvalidDuration, got %v", err)
		}
	})
}

func TestFocusEngineScenarios(t *testing.T) {
	t.Run("full run records one session", func(t *testing.T) {
		f := newTestEngine(t, nil)

		if err := f.engine.Start(25); err != nil {
			t.Fatalf("start failed: %v", err)
		}
		f.scheduler.Fire(1500)

		snap := f.engine.Snapshot()
		if snap.RemainingSeconds != 0 || snap.Running {
			t.Errorf("expected depleted, got %d seconds running=%v", snap.RemainingSeconds, snap.Running)
		}
		if len(snap.Sessions) != 1 || snap.Sessions[0].Duration != 25 {
			t.Fatalf("expected one 25 minute session, got %+v", snap.Sessions)
		}
		if f.chime.Rings() != 1 {
			t.Errorf("expected one ring, got %d", f.chime.Rings())
		}
	})

	t.Run("pause and resume records once", func(t *testing.T) {
		f := newTestEngine(t, nil)

		_ = f.engine.Start(15)
		f.scheduler.Fire(300)
		f.engine.Pause()
		f.engine.Tick()

		if got := f.engine.Snapshot().RemainingSeconds; got != 600 {
			t.Fatalf("expected 600 seconds after pause, got %d", got)
		}

		_ = f.engine.Start(15)
		f.scheduler.Fire(600)
		f.engine.Tick()

		snap := f.engine.Snapshot()
		if len(snap.Sessions) != 1 || snap.Sessions[0].Duration != 15 {
			t.Fatalf("expected exactly one 15 minute session, got %+v", snap.Sessions)
		}
		if f.chime.Rings() != 1 {
			t.Errorf("expected one ring, got %d", f.chime.Rings())
		}
	})

	t.Run("reset mid run records nothing", func(t *testing.T) {
		f := newTestEngine(t, nil)

		_ = f.engine.Start(45)
		f.scheduler.Fire(100)
		f.engine.Reset()

		snap := f.engine.Snapshot()
		if snap.Phase != Idle || snap.RemainingSeconds != 2700 {
			t.Errorf("expected idle at 2700, got %s at %d", snap.Phase, snap.RemainingSeconds)
		}
		if len(snap.Sessions) != 0 || f.chime.Rings() != 0 {
			t.Errorf("expected no sessions or rings, got %d/%d", len(snap.Sessions), f.chime.Rings())
		}
	})

	t.Run("new session after depletion", func(t *testing.T) {
		f := newTestEngine(t, nil)

		_ = f.engine.Start(15)
		f.scheduler.Fire(900)
		f.engine.Reset()
		if err := f.engine.Select(45); err != nil {
			t.Fatalf("expected select after reset, got %v", err)
		}
		_ = f.engine.Start(45)
		f.scheduler.Fire(2700)

		sessions := f.engine.Snapshot().Sessions
		if len(sessions) != 2 || sessions[0].Duration != 45 || sessions[1].Duration != 15 {
			t.Errorf("expected [45 15], got %+v", sessions)
		}
	})

	t.Run("failed write still rings", func(t *testing.T) {
		store := tu.NewMapStore()
		f := newTestEngine(t, store)
		store.SetErr = errors.New("quota exceeded")

		_ = f.engine.Start(15)
		f.scheduler.Fire(900)

		if f.chime.Rings() != 1 {
			t.Errorf("expected one ring, got %d", f.chime.Rings())
		}
		if f.engine.LastError() == nil {
			t.Error("expected last error to be set")
		}
		if len(f.engine.Snapshot().Sessions) != 0 {
			t.Error("expected no in-memory session after failed write")
		}
	})
}

func TestFocusEngineToggle(t *testing.T) {
	f := newTestEngine(t, nil)

	steps := []Phase{Running, Paused, Running}
	for i, want := range steps {
		if err := f.engine.Toggle(); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if i == 0 {
			f.scheduler.Fire(1)
		}
		if got := f.engine.Countdown().Phase(); got != want {
			t.Errorf("toggle %d: expected %s, got %s", i, want, got)
		}
	}

	f.scheduler.Fire(2000)
	if err := f.engine.Toggle(); err != nil {
		t.Fatalf("toggle on depleted failed: %v", err)
	}
	if got := f.engine.Countdown().Phase(); got != Depleted {
		t.Errorf("expected depleted to stay put, got %s", got)
	}
}

func TestFocusEngineRefreshQuote(t *testing.T) {
	store := tu.NewMapStore()
	clock := tu.NewFixedClock(testNow)
	engine, err := NewFocusEngine(EngineOpts{
		Store:     store,
		Clock:     clock,
		Rand:      &tu.SeqRand{Values: []int{0, 4}},
		Scheduler: &tu.ManualScheduler{},
		Logger:    shared.NewLogger(io.Discard),
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	defer engine.Close()

	engine.Reset()
	if engine.DailyQuote() != DefaultQuotes[0] {
		t.Errorf("expected same-day quote, got %q", engine.DailyQuote())
	}

	clock.Advance(24 * time.Hour)
	engine.Reset()
	if engine.DailyQuote() != DefaultQuotes[4] {
		t.Errorf("expected next-day quote %q, got %q", DefaultQuotes[4], engine.DailyQuote())
	}
}

func TestFocusEngineCompleted(t *testing.T) {
	await := func(t *testing.T, engine *FocusEngine) error {
		t.Helper()
		select {
		case err := <-engine.Completed():
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("expected a completion outcome")
			return nil
		}
	}

	t.Run("slow failed write is reported after the chime", func(t *testing.T) {
		store := tu.NewMapStore()
		chime := &tu.ChimeCounter{}
		updates := make(chan Update, 128)
		engine, err := NewFocusEngine(EngineOpts{
			Store:          store,
			Clock:          tu.NewFixedClock(testNow),
			Rand:           &tu.SeqRand{Values: []int{0}},
			Scheduler:      TickerScheduler{Interval: time.Millisecond},
			Chime:          chime,
			Logger:         shared.NewLogger(io.Discard),
			Durations:      []int{1},
			DefaultMinutes: 1,
			Updates:        updates,
		})
		if err != nil {
			t.Fatalf("failed to create engine: %v", err)
		}
		defer engine.Close()

		store.SetErr = errors.New("disk full")
		store.SetDelay = 100 * time.Millisecond
		if err := engine.Start(1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err = await(t, engine)
		if err == nil || !strings.Contains(err.Error(), "disk full") {
			t.Errorf("expected disk full error, got %v", err)
		}
		if engine.LastError() == nil {
			t.Error("expected LastError to be set once completion is published")
		}
		if chime.Rings() != 1 {
			t.Errorf("expected 1 ring, got %d", chime.Rings())
		}
	})

	t.Run("successful write", func(t *testing.T) {
		f := newTestEngine(t, nil)
		if err := f.engine.Start(15); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		f.scheduler.Fire(15 * 60)

		if err := await(t, f.engine); err != nil {
			t.Errorf("expected nil outcome, got %v", err)
		}
		if f.engine.Sessions().TotalSessions() != 1 {
			t.Errorf("expected 1 session, got %d", f.engine.Sessions().TotalSessions())
		}
	})

	t.Run("unread outcome is replaced by the next", func(t *testing.T) {
		f := newTestEngine(t, nil)
		f.engine.Start(15)
		f.scheduler.Fire(15 * 60)

		f.store.SetErr = errors.New("read only")
		f.engine.Start(15)
		f.scheduler.Fire(15 * 60)

		err := await(t, f.engine)
		if err == nil || !strings.Contains(err.Error(), "read only") {
			t.Errorf("expected latest outcome, got %v", err)
		}
		select {
		case extra := <-f.engine.Completed():
			t.Errorf("expected a single pending outcome, got %v", extra)
		default:
		}
	})
}
