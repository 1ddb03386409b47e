package fetcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/coindash/market-data/coingecko"
)

// RateLimitState is the consumer-facing view of the rate-limit gate
type RateLimitState struct {
	IsRateLimited bool   `json:"isRateLimited"`
	RetryAfter    int    `json:"retryAfter"` // seconds remaining
	CanRetry      bool   `json:"canRetry"`
	Message       string `json:"message,omitempty"`
}

// RateLimitGate tracks upstream 429 rejections: it holds the advisory
// countdown, blocks manual retries until it elapses, and fires onReady
// once when the wait is over so a scheduled retry can run. Observing a
// non-rate-limit error or a success clears the gate.
type RateLimitGate struct {
	mu        sync.Mutex
	limited   bool
	remaining int
	canRetry  bool
	message   string
	onReady   func()

	// generation invalidates an in-flight countdown goroutine when the
	// gate is re-triggered or cleared
	generation int
}

// NewRateLimitGate creates a gate; onReady may be nil
func NewRateLimitGate(onReady func()) *RateLimitGate {
	return &RateLimitGate{
		canRetry: true,
		onReady:  onReady,
	}
}

// Observe inspects a load error. A rate-limit failure arms the
// countdown; any other failure clears a previously armed gate.
func (g *RateLimitGate) Observe(err error) {
	apiErr, ok := coingecko.AsAPIError(err)
	if !ok || !apiErr.IsRateLimit {
		g.Clear()
		return
	}

	seconds := apiErr.RetryAfter
	if seconds <= 0 {
		seconds = coingecko.DefaultRetryAfterSeconds
	}

	g.mu.Lock()
	g.limited = true
	g.remaining = seconds
	g.canRetry = false
	g.message = apiErr.Message
	g.generation++
	gen := g.generation
	g.mu.Unlock()

	go g.countdown(gen)
}

func (g *RateLimitGate) countdown(gen int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		g.mu.Lock()
		if g.generation != gen {
			g.mu.Unlock()
			return
		}

		g.remaining--
		if g.remaining > 0 {
			g.mu.Unlock()
			continue
		}

		g.remaining = 0
		g.canRetry = true
		onReady := g.onReady
		g.mu.Unlock()

		if onReady != nil {
			onReady()
		}
		return
	}
}

// State returns a snapshot of the gate
func (g *RateLimitGate) State() RateLimitState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return RateLimitState{
		IsRateLimited: g.limited,
		RetryAfter:    g.remaining,
		CanRetry:      g.canRetry,
		Message:       g.message,
	}
}

// Retry clears the gate if the countdown allows it and reports whether
// the retry was accepted
func (g *RateLimitGate) Retry() bool {
	g.mu.Lock()
	if !g.canRetry {
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()

	g.Clear()
	return true
}

// Clear resets the gate to its idle state
func (g *RateLimitGate) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.limited = false
	g.remaining = 0
	g.canRetry = true
	g.message = ""
	g.generation++
}

// Stop cancels a running countdown
func (g *RateLimitGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
}

// FormatTimeRemaining renders the countdown for display, e.g. "45s" or
// "1m 05s"
func (g *RateLimitGate) FormatTimeRemaining() string {
	g.mu.Lock()
	remaining := g.remaining
	g.mu.Unlock()

	if remaining <= 0 {
		return "0s"
	}
	if remaining < 60 {
		return fmt.Sprintf("%ds", remaining)
	}
	return fmt.Sprintf("%dm %02ds", remaining/60, remaining%60)
}
