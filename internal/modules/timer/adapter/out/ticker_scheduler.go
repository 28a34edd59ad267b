package out

import (
	"sync"
	"time"

	timerout "sprintbell/internal/modules/timer/port/out"
)

// TickerScheduler drives callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

func NewTickerScheduler() timerout.Scheduler {
	return TickerScheduler{}
}

// Every never blocks on cancel: the caller may hold a lock the callback needs.
func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
