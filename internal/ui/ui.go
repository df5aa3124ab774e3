package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/incense/internal/formatter"
	"github.com/desertthunder/incense/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TimerView ViewState = iota
	DashboardView
	ReflectionsView
)

var viewNames = []string{"Timer", "Dashboard", "Reflections"}

func (v ViewState) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("view(%d)", int(v))
}

const stickHeight = 10

var smokeFrames = [][]string{
	{"  (  ", "   ) ", "  (  "},
	{"   ) ", "  (  ", "   ) "},
}

// Model represents the TUI application state.
type Model struct {
	engine      *tasks.FocusEngine
	scheduler   *Scheduler
	view        ViewState
	width       int
	height      int
	loc         *time.Location
	bar         progress.Model
	sessionList list.Model
	quoteList   list.Model
	help        help.Model
	keys        keyMap
	err         error
}

// NewModel creates a new TUI model. scheduler must be the one the engine was built with.
func NewModel(engine *tasks.FocusEngine, scheduler *Scheduler) *Model {
	m := &Model{
		engine:    engine,
		scheduler: scheduler,
		view:      TimerView,
		loc:       time.Local,
		bar:       progress.New(progress.WithGradient("#8B5A2B", "#FF5F1F"), progress.WithoutPercentage()),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.bar.Width = 30
	m.sessionList = newList("Ash Piles", nil)
	m.quoteList = newList("Reflections", nil)
	m.refreshSessions()
	m.refreshQuotes()
	return m
}

// Init sets the window title.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("incense")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessionList.SetSize(max(msg.Width-4, 0), max(msg.Height-14, 0))
		m.quoteList.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		m.bar.Width = min(max(msg.Width-20, 10), 50)
		return m, nil

	case tickMsg:
		if !m.scheduler.deliver(msg.gen) {
			return m, nil
		}
		if m.engine.Countdown().Phase() == tasks.Depleted {
			m.err = m.engine.LastError()
			m.refreshSessions()
		}
		return m, m.scheduler.next()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.engine.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.setView((m.view + 1) % ViewState(len(viewNames)))
		return m, nil
	case key.Matches(msg, m.keys.timer):
		m.setView(TimerView)
		return m, nil
	case key.Matches(msg, m.keys.dashboard):
		m.setView(DashboardView)
		return m, nil
	case key.Matches(msg, m.keys.reflections):
		m.setView(ReflectionsView)
		return m, nil
	}

	if m.view != TimerView {
		return m.updateLists(msg)
	}

	gen := m.scheduler.Generation()
	switch {
	case key.Matches(msg, m.keys.toggle):
		if err := m.engine.Toggle(); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.reset):
		m.engine.Reset()
		m.err = nil
		m.refreshQuotes()
	case key.Matches(msg, m.keys.shorter):
		m.cycleDuration(-1)
	case key.Matches(msg, m.keys.longer):
		m.cycleDuration(1)
	}

	if m.scheduler.Generation() != gen {
		return m, m.scheduler.next()
	}
	return m, nil
}

// cycleDuration moves the selection by step, wrapping. Ignored unless Idle.
func (m *Model) cycleDuration(step int) {
	if m.engine.Countdown().Phase() != tasks.Idle {
		return
	}

	durations := m.engine.Durations()
	state := m.engine.Countdown().State()
	idx := 0
	for i, d := range durations {
		if d == state.SelectedMinutes {
			idx = i
		}
	}
	idx = (idx + step + len(durations)) % len(durations)

	if err := m.engine.Select(durations[idx]); err != nil {
		m.err = err
	}
}

func (m *Model) setView(v ViewState) {
	m.view = v
	switch v {
	case DashboardView:
		m.refreshSessions()
	case ReflectionsView:
		m.refreshQuotes()
	}
}

func (m *Model) refreshSessions() {
	m.sessionList.SetItems(sessionItems(m.engine.Sessions().Sessions(), m.loc))
}

func (m *Model) refreshQuotes() {
	m.quoteList.SetItems(quoteItems(m.engine.QuotePool(), m.engine.DailyQuote()))
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case DashboardView:
		m.sessionList, cmd = m.sessionList.Update(msg)
	case ReflectionsView:
		m.quoteList, cmd = m.quoteList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case TimerView:
		body = m.renderTimer()
	case DashboardView:
		body = m.renderDashboard()
	case ReflectionsView:
		body = m.renderReflections()
	}

	return styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body))
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if ViewState(i) == m.view {
			tabs[i] = styles.active.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderTimer() string {
	snap := m.engine.Snapshot()

	parts := []string{
		renderStick(snap.BurnProgress, snap.Phase, snap.RemainingSeconds),
		m.bar.ViewAs(snap.BurnProgress),
		styles.clock.Render(formatter.FormatClock(snap.RemainingSeconds)),
		phaseLine(snap.Phase),
	}

	if snap.Phase == tasks.Idle {
		parts = append(parts, renderDurations(m.engine.Durations(), snap.SelectedMinutes))
	}

	if m.err != nil {
		parts = append(parts, styles.warn.Render(fmt.Sprintf("Session could not be saved: %v", m.err)))
	}

	if snap.DailyQuote != "" {
		parts = append(parts, "", styles.quote.Render(fmt.Sprintf("“%s”", snap.DailyQuote)))
	}

	parts = append(parts, "", m.help.ShortHelpView(m.timerKeys(snap.Phase)))
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// timerKeys returns the contextual controls for phase.
func (m *Model) timerKeys(phase tasks.Phase) []key.Binding {
	switch phase {
	case tasks.Running:
		return []key.Binding{withHelp(m.keys.toggle, "pause"), m.keys.next, m.keys.quit}
	case tasks.Paused:
		return []key.Binding{withHelp(m.keys.toggle, "resume"), m.keys.reset, m.keys.next, m.keys.quit}
	case tasks.Depleted:
		return []key.Binding{withHelp(m.keys.reset, "new session"), m.keys.next, m.keys.quit}
	default:
		return []key.Binding{m.keys.toggle, m.keys.shorter, m.keys.longer, m.keys.next, m.keys.quit}
	}
}

func (m *Model) renderDashboard() string {
	sum := m.engine.Sessions().Summary()

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.stat.Render(fmt.Sprintf("%d\nsessions", sum.TotalSessions)),
		styles.stat.Render(fmt.Sprintf("%d\nminutes focused", sum.TotalMinutes)),
		styles.stat.Render(fmt.Sprintf("%d · %d min\ntoday", sum.TodaySessions, sum.TodayMinutes)),
	)

	piles := styles.help.Render("No incense burned yet...")
	if sum.TotalSessions > 0 {
		piles = m.sessionList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.title.Render("Dashboard"),
		stats,
		"",
		piles,
		"",
		m.help.ShortHelpView([]key.Binding{m.keys.timer, m.keys.reflections, m.keys.quit}),
	)
}

func (m *Model) renderReflections() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.quoteList.View(),
		"",
		m.help.ShortHelpView([]key.Binding{m.keys.timer, m.keys.dashboard, m.keys.quit}),
	)
}

func phaseLine(phase tasks.Phase) string {
	switch phase {
	case tasks.Running:
		return styles.ok.Render("burning")
	case tasks.Paused:
		return styles.warn.Render("paused")
	case tasks.Depleted:
		return styles.ok.Render("The incense has burned out.")
	default:
		return styles.help.Render("choose a duration")
	}
}

func renderDurations(durations []int, selected int) string {
	opts := make([]string, len(durations))
	for i, d := range durations {
		label := fmt.Sprintf("%d min", d)
		if d == selected {
			opts[i] = styles.selected.Render(label)
		} else {
			opts[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, opts...)
}

// renderStick draws the incense: smoke while running, the unburned stick with an ember, the holder, and ash.
func renderStick(burn float64, phase tasks.Phase, frame int) string {
	burned := int(math.Round(min(max(burn, 0), 1) * stickHeight))
	left := stickHeight - burned

	rows := make([]string, 0, stickHeight+5)
	if phase == tasks.Running {
		for _, s := range smokeFrames[frame%len(smokeFrames)] {
			rows = append(rows, styles.smoke.Render(s))
		}
	} else {
		rows = append(rows, "", "", "")
	}

	for range burned {
		rows = append(rows, " ")
	}
	if left > 0 && (phase == tasks.Running || phase == tasks.Paused) {
		rows = append(rows, styles.ember.Render("●"))
		left--
	}
	for range left {
		rows = append(rows, styles.stick.Render("┃"))
	}

	rows = append(rows, styles.stick.Render("▄█▄"))
	if burned > 0 {
		rows = append(rows, styles.ash.Render(strings.Repeat("∴", (burned+1)/2)))
	} else {
		rows = append(rows, "")
	}

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
