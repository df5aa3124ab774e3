// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"
)

// FixedClock is a settable clock.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{now: t} }

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ManualScheduler records scheduled tick functions and fires them on demand.
type ManualScheduler struct {
	mu        sync.Mutex
	tick      func()
	armed     bool
	Scheduled int // number of Schedule calls
	Cancelled int // number of effective cancels
}

func (s *ManualScheduler) Schedule(tick func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick = tick
	s.armed = true
	s.Scheduled++
	gen := s.Scheduled

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.armed && s.Scheduled == gen {
			s.armed = false
			s.Cancelled++
		}
	}
}

// Armed reports whether a tick source is active.
func (s *ManualScheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Fire invokes the active tick function n times, stopping early once it is cancelled.
// It returns how many ticks were delivered.
func (s *ManualScheduler) Fire(n int) int {
	delivered := 0
	for range n {
		s.mu.Lock()
		tick, armed := s.tick, s.armed
		s.mu.Unlock()
		if !armed {
			break
		}
		tick()
		delivered++
	}
	return delivered
}

// Stale returns the last scheduled tick function even if it has been cancelled,
// to simulate a tick already in flight when the driver stopped.
func (s *ManualScheduler) Stale() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// SeqRand returns the configured values in order (modulo n), cycling.
type SeqRand struct {
	mu     sync.Mutex
	Values []int
	calls  int
}

func (r *SeqRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.calls%len(r.Values)]
	r.calls++
	return v % n
}

// Calls reports how many picks were made.
func (r *SeqRand) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// MapStore is an in-memory repositories.Store with failure injection.
type MapStore struct {
	mu     sync.Mutex
	Data   map[string]string
	GetErr   error
	SetErr   error
	SetDelay time.Duration // applied to every Set before it succeeds or fails
	Writes   int
}

func NewMapStore() *MapStore { return &MapStore{Data: map[string]string{}} }

func (m *MapStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MapStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetDelay > 0 {
		time.Sleep(m.SetDelay)
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	m.Writes++
	return nil
}

// ChimeCounter counts Ring calls.
type ChimeCounter struct {
	mu    sync.Mutex
	rings int
}

func (c *ChimeCounter) Ring() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rings++
}

func (c *ChimeCounter) Rings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rings
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
