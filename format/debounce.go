package format

import (
	"sync"
	"time"
)

// Debounce returns a wrapper around fn that defers execution until wait
// has elapsed since the last invocation. Each call cancels any pending
// deferred run, so a burst of calls results in a single execution after
// the burst settles. The eventual call is fire-and-forget.
func Debounce(fn func(), wait time.Duration) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}
