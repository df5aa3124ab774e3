package server

import (
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/tasks"
)

var _ Source = (*StoreSource)(nil)

// StoreSource reads the session log and quote cache fresh from the store on every call,
// so a dashboard running beside the TUI sees new sessions.
type StoreSource struct {
	Log    *tasks.SessionLog
	Quotes *tasks.QuoteRotator
}

func (s *StoreSource) Sessions() []models.Session { return s.Log.Reload() }

func (s *StoreSource) Summary() models.Summary {
	s.Log.Reload()
	return s.Log.Summary()
}

func (s *StoreSource) DailyQuote() models.DailyQuote { return s.Quotes.Cached() }

func (s *StoreSource) Today() string { return models.DayKey(s.Log.Now()) }
