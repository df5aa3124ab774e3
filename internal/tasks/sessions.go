package tasks

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/repositories"
	"github.com/desertthunder/incense/internal/shared"
)

// SessionLog is the most-recent-first list of completed sessions, mirrored to the store.
//
// Record is the only mutator. The in-memory list is swapped only after the store write
// succeeds, so the persisted list and the in-memory list never disagree.
type SessionLog struct {
	mu       sync.RWMutex
	store    repositories.Store
	clock    shared.Clock
	logger   *log.Logger
	newID    func() string
	sessions []models.Session
}

// NewSessionLog creates a [SessionLog] and loads the persisted list once.
func NewSessionLog(store repositories.Store, clock shared.Clock, logger *log.Logger) *SessionLog {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := &SessionLog{
		store:  store,
		clock:  clock,
		logger: logger,
		newID:  shared.GenerateID,
	}
	l.sessions = l.LoadAll()
	return l
}

// LoadAll returns the persisted list.
//
// Absent, unreadable, or unparseable values yield an empty list; invalid entries are dropped.
func (l *SessionLog) LoadAll() []models.Session {
	raw, ok, err := l.store.Get(models.SessionsKey)
	if err != nil {
		l.logger.Warn("failed to read sessions, treating as empty", "error", err)
		return []models.Session{}
	}
	if !ok || raw == "" {
		return []models.Session{}
	}

	var stored []models.Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		l.logger.Warn("stored sessions are corrupt, treating as empty", "error", err)
		return []models.Session{}
	}

	sessions := make([]models.Session, 0, len(stored))
	for _, s := range stored {
		if err := s.Validate(); err != nil {
			l.logger.Warn("dropping invalid session", "error", err)
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions
}

// Record creates a session for minutes completed now, prepends it, and persists the full list.
func (l *SessionLog) Record(minutes int) (models.Session, error) {
	if minutes <= 0 {
		return models.Session{}, fmt.Errorf("%w: %d", shared.ErrInvalidDuration, minutes)
	}

	session := models.NewSession(l.newID(), minutes, l.clock.Now())

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.Session, 0, len(l.sessions)+1)
	next = append(next, session)
	next = append(next, l.sessions...)

	data, err := json.Marshal(next)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to encode sessions: %w", err)
	}

	if err := l.store.Set(models.SessionsKey, string(data)); err != nil {
		return models.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	l.sessions = next
	l.logger.Info("session recorded", "id", session.ID, "minutes", minutes, "total", len(next))
	return session, nil
}

// Sessions returns a copy of the in-memory list, most recent first.
func (l *SessionLog) Sessions() []models.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sessions)
}

// TotalSessions is the number of completed sessions.
func (l *SessionLog) TotalSessions() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// TotalMinutes is the sum of session durations.
func (l *SessionLog) TotalMinutes() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0
	for _, s := range l.sessions {
		total += s.Duration
	}
	return total
}

// Summary returns the totals plus today's sessions in the clock's location.
func (l *SessionLog) Summary() models.Summary {
	now := l.clock.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return Summarize(l.sessions, now)
}

// Reload replaces the in-memory list with the persisted one, for readers sharing the store
// with another process.
func (l *SessionLog) Reload() []models.Session {
	sessions := l.LoadAll()

	l.mu.Lock()
	l.sessions = sessions
	l.mu.Unlock()
	return slices.Clone(sessions)
}

// Now returns the log's clock reading.
func (l *SessionLog) Now() time.Time { return l.clock.Now() }

// Summarize aggregates sessions, counting those completed on now's calendar day as today.
func Summarize(sessions []models.Session, now time.Time) models.Summary {
	today := models.DayKey(now)

	var sum models.Summary
	for _, s := range sessions {
		sum.TotalSessions++
		sum.TotalMinutes += s.Duration
		if models.DayKey(s.CompletedAt.In(now.Location())) == today {
			sum.TodaySessions++
			sum.TodayMinutes += s.Duration
		}
	}
	return sum
}
