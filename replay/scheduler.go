package replay

import (
	"sync"
	"time"
)

// Scheduler produces repeating callbacks for the replay timer. The
// returned stop function halts future callbacks and is safe to call
// more than once. A callback already dispatched may still run after
// stop returns; the controller tolerates that with its generation
// check.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerScheduler drives callbacks from a time.Ticker on its own
// goroutine. The zero value is ready to use.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
