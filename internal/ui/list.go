package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/incense/internal/formatter"
	"github.com/desertthunder/incense/internal/models"
)

var (
	_ list.Item = sessionItem{}
	_ list.Item = quoteItem{}
)

// sessionItem wraps [models.Session] to implement [list.Item] as an "ash pile".
type sessionItem struct {
	session models.Session
	loc     *time.Location
}

func (i sessionItem) FilterValue() string { return i.session.ID }
func (i sessionItem) Title() string       { return formatter.FormatMinutes(i.session.Duration) }
func (i sessionItem) Description() string {
	return formatter.FormatCompletedAt(i.session.CompletedAt, i.loc)
}

// quoteItem is one reflection in the quote pool.
type quoteItem struct {
	text  string
	index int
	today bool
}

func (i quoteItem) FilterValue() string { return i.text }
func (i quoteItem) Title() string       { return i.text }
func (i quoteItem) Description() string {
	if i.today {
		return "today's reflection"
	}
	return fmt.Sprintf("reflection %d", i.index+1)
}

func sessionItems(sessions []models.Session, loc *time.Location) []list.Item {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s, loc: loc}
	}
	return items
}

func quoteItems(pool []string, today string) []list.Item {
	items := make([]list.Item, len(pool))
	for i, q := range pool {
		items[i] = quoteItem{text: q, index: i, today: q == today}
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}
