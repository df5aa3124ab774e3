// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [TimerView] : the incense stick, the MM:SS countdown, the duration selector and today's reflection
//  2. [DashboardView] : session totals and one "ash pile" per completed session
//  3. [ReflectionsView] : every quote in the pool
//
// The [Model] owns a [tasks.FocusEngine]. Countdown ticks are bubbletea commands issued by
// [Scheduler]; each tick carries the generation it was scheduled under, and the model only
// delivers ticks of the current generation, so pause, reset and quit stop decrements immediately.
//
// Keyboard navigation: tab/1/2/3 switch views, space/enter lights, pauses and resumes, r resets,
// ←/→ (h/l) cycle the duration while idle, q quits. Help is rendered with charmbracelet/bubbles/help.
package ui
