package models

import (
	"fmt"
	"time"
)

// Store keys shared by every persistence backend.
const (
	SessionsKey  = "incense-sessions"
	QuoteDateKey = "quote-date"
	QuoteTextKey = "daily-quote"
)

// QuoteDateLayout formats a calendar day as "Mon Oct 19 2026".
const QuoteDateLayout = "Mon Jan 02 2006"

// Session is one completed countdown. It is never edited after creation.
type Session struct {
	ID          string    `json:"id" yaml:"id"`
	Duration    int       `json:"duration" yaml:"duration"`
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
}

// NewSession builds a session completed at t.
func NewSession(id string, minutes int, t time.Time) Session {
	return Session{ID: id, Duration: minutes, CompletedAt: t.UTC()}
}

// Validate checks the session's data.
func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if s.Duration <= 0 {
		return fmt.Errorf("session %s: duration must be positive, got %d", s.ID, s.Duration)
	}
	if s.CompletedAt.IsZero() {
		return fmt.Errorf("session %s: completion time is required", s.ID)
	}
	return nil
}

// DailyQuote is the cached quote for one calendar day.
type DailyQuote struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// ValidFor reports whether the cache can be reused on day (formatted with [QuoteDateLayout]).
func (q DailyQuote) ValidFor(day string) bool {
	return q.Text != "" && q.Date == day
}

// DayKey formats t as a quote cache date in t's location.
func DayKey(t time.Time) string {
	return t.Format(QuoteDateLayout)
}

// Summary aggregates the session log for the dashboard.
type Summary struct {
	TotalSessions int `json:"totalSessions" yaml:"totalSessions"`
	TotalMinutes  int `json:"totalMinutes" yaml:"totalMinutes"`
	TodaySessions int `json:"todaySessions" yaml:"todaySessions"`
	TodayMinutes  int `json:"todayMinutes" yaml:"todayMinutes"`
}
