package tasks

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/repositories"
	"github.com/desertthunder/incense/internal/shared"
)

// DefaultQuotes is the built-in reflection pool.
var DefaultQuotes = []string{
	"The quieter you become, the more you can hear.",
	"One breath at a time.",
	"Patience is the companion of wisdom.",
	"In stillness, find your strength.",
	"The present moment is all we have.",
	"Let go of what was, embrace what is.",
	"Simplicity is the ultimate sophistication.",
	"Focus on the journey, not the destination.",
	"Peace comes from within.",
	"Every moment is a fresh beginning.",
}

// RandSource picks an index in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// QuoteRotator picks one quote per calendar day and caches it in the store.
type QuoteRotator struct {
	mu     sync.Mutex
	store  repositories.Store
	clock  shared.Clock
	rand   RandSource
	logger *log.Logger
}

// NewQuoteRotator creates a [QuoteRotator]. A nil rand uses the global math/rand/v2 source.
func NewQuoteRotator(store repositories.Store, clock shared.Clock, r RandSource, logger *log.Logger) *QuoteRotator {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if r == nil {
		r = globalRand{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &QuoteRotator{store: store, clock: clock, rand: r, logger: logger}
}

// Cached returns the stored quote cache. Read errors count as absent.
func (q *QuoteRotator) Cached() models.DailyQuote {
	date, _, err := q.store.Get(models.QuoteDateKey)
	if err != nil {
		q.logger.Warn("failed to read quote date", "error", err)
		return models.DailyQuote{}
	}
	text, _, err := q.store.Get(models.QuoteTextKey)
	if err != nil {
		q.logger.Warn("failed to read daily quote", "error", err)
		return models.DailyQuote{}
	}

	return models.DailyQuote{Date: date, Text: text}
}

// QuoteForToday returns the cached quote when it was picked today, otherwise picks
// uniformly from pool, caches it with today's date, and returns it.
//
// A failed cache write is logged and the fresh pick is still returned.
func (q *QuoteRotator) QuoteForToday(pool []string) (string, error) {
	if len(pool) == 0 {
		return "", shared.ErrEmptyQuotePool
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	today := models.DayKey(q.clock.Now())
	if cached := q.Cached(); cached.ValidFor(today) {
		return cached.Text, nil
	}

	quote := pool[q.rand.IntN(len(pool))]

	if err := q.store.Set(models.QuoteDateKey, today); err != nil {
		q.logger.Warn("failed to cache quote date", "error", err)
		return quote, nil
	}
	if err := q.store.Set(models.QuoteTextKey, quote); err != nil {
		q.logger.Warn("failed to cache daily quote", "error", err)
	}

	q.logger.Debug("picked daily quote", "date", today)
	return quote, nil
}
