package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next        key.Binding
	timer       key.Binding
	dashboard   key.Binding
	reflections key.Binding
	toggle      key.Binding
	reset       key.Binding
	shorter     key.Binding
	longer      key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		timer:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "timer")),
		dashboard:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "dashboard")),
		reflections: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "reflections")),
		toggle:      key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "light incense")),
		reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		shorter:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "shorter")),
		longer:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "longer")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.reset, k.shorter, k.longer},
		{k.timer, k.dashboard, k.reflections, k.next},
		{k.quit},
	}
}

// withHelp relabels a binding for the current phase.
func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	b.SetHelp(h.Key, desc)
	return b
}
