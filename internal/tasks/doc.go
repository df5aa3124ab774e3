// Package tasks holds the timer core: the countdown state machine, the session log, and the
// daily quote rotator, bundled for the presentation layer by [FocusEngine].
//
// # Countdown
//
// [Countdown] moves through four phases:
//
//	Idle --Start--> Running --Pause--> Paused --Start/Resume--> Running
//	Running --Tick reaches 0--> Depleted --Reset--> Idle
//
// Time only moves on [Countdown.Tick]. A [Scheduler] delivers ticks while running: the
// headless CLI uses [TickerScheduler], the TUI schedules bubbletea tick commands, and tests
// fire ticks by hand. Pause, Reset, completion, and Close cancel the active driver, and ticks
// from a cancelled driver are ignored. The completion hook fires exactly once per run.
//
// State changes are published on an optional channel with non-blocking sends, so a slow
// reader only misses intermediate updates.
//
// # Session log
//
// [SessionLog] keeps completed sessions most-recent-first and writes the full JSON list to
// the store on every Record. Missing or corrupt data loads as an empty log.
//
// # Quote rotator
//
// [QuoteRotator] caches one quote per calendar day under two store keys and reuses it
// until the date changes.
package tasks
