package tasks

import (
	"sync"
	"time"
)

// Scheduler drives a countdown. Schedule starts delivering tick once per interval
// until the returned cancel func is called. Cancel must not block on an in-flight tick.
type Scheduler interface {
	Schedule(tick func()) (cancel func())
}

// TickerScheduler delivers ticks from a [time.Ticker] goroutine.
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler returns a one-second [TickerScheduler].
func NewTickerScheduler() TickerScheduler {
	return TickerScheduler{Interval: time.Second}
}

func (s TickerScheduler) Schedule(tick func()) func() {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// cancel may race the ticker; prefer done
				select {
				case <-done:
					return
				default:
				}
				tick()
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
