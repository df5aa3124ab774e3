package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg delivers one countdown second for scheduler generation gen.
type tickMsg struct {
	gen uint64
}

// Scheduler drives the countdown through bubbletea commands instead of a goroutine.
//
// Each Schedule call starts a new generation; ticks tagged with an older generation
// are dropped, so pausing or resetting stops decrements even with a tick already queued.
type Scheduler struct {
	Interval time.Duration

	mu    sync.Mutex
	gen   uint64
	tick  func()
	armed bool
}

// NewScheduler returns a one-second [Scheduler].
func NewScheduler() *Scheduler {
	return &Scheduler{Interval: time.Second}
}

func (s *Scheduler) Schedule(tick func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.tick = tick
	s.armed = true
	gen := s.gen

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.armed = false
			s.tick = nil
		}
	}
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// next returns the command for the next tick of the armed generation, or nil.
func (s *Scheduler) next() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return nil
	}
	gen := s.gen
	return tea.Tick(s.Interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// deliver runs the tick for gen and reports whether the chain should continue.
func (s *Scheduler) deliver(gen uint64) bool {
	s.mu.Lock()
	if !s.armed || gen != s.gen {
		s.mu.Unlock()
		return false
	}
	tick := s.tick
	s.mu.Unlock()

	tick()
	return true
}
