package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette(Colors{
	Title:  "#E8A33D",
	OK:     "#04B575",
	Err:    "#FF4D4D",
	Warn:   "#FFA500",
	Help:   "#626262",
	Stick:  "#8B5A2B",
	Ember:  "#FF5F1F",
	Smoke:  "#9A9A9A",
	Ash:    "#5C5C5C",
	Quote:  "#C9B79C",
	Accent: "#7D56F4",
})

// Colors names the hex colors a [Palette] is built from.
type Colors struct {
	Title, OK, Err, Warn, Help      string
	Stick, Ember, Smoke, Ash, Quote string
	Accent                          string
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	stick    lipgloss.Style
	ember    lipgloss.Style
	smoke    lipgloss.Style
	ash      lipgloss.Style
	quote    lipgloss.Style
	clock    lipgloss.Style
	tab      lipgloss.Style
	active   lipgloss.Style
	selected lipgloss.Style
	stat     lipgloss.Style
	frame    lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title:    NewBold(c.Title).MarginBottom(1),
		ok:       NewBold(c.OK),
		err:      NewBold(c.Err),
		warn:     NewStyle(c.Warn),
		help:     NewEm(c.Help),
		stick:    NewBold(c.Stick),
		ember:    NewBold(c.Ember),
		smoke:    NewStyle(c.Smoke).Faint(true),
		ash:      NewStyle(c.Ash),
		quote:    NewEm(c.Quote),
		clock:    NewBold(c.Title).Padding(0, 1),
		tab:      NewStyle(c.Help).Padding(0, 1),
		active:   NewBold(c.Title).Padding(0, 1).Underline(true),
		selected: NewBold(c.Accent).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(c.Accent)),
		stat: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Ash)),
		frame: lipgloss.NewStyle().Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
