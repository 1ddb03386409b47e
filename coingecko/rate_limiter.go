package coingecko

import (
	"sync"

	"github.com/coindash/market-data/config"
	"golang.org/x/time/rate"
)

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// RateLimiters hands out one shared limiter per key type so every
// operation using the same key budget draws from the same bucket
type RateLimiters struct {
	mu       sync.Mutex
	limiters map[KeyType]*rate.Limiter
	cfg      config.APIKeyConfig
}

// NewRateLimiters creates limiters configured from APIKeyConfig
func NewRateLimiters(cfg config.APIKeyConfig) *RateLimiters {
	return &RateLimiters{
		limiters: make(map[KeyType]*rate.Limiter),
		cfg:      cfg,
	}
}

// ForKeyType returns the limiter for a key type, creating it on first use
func (m *RateLimiters) ForKeyType(keyType KeyType) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, ok := m.limiters[keyType]; ok {
		return limiter
	}

	rpm, burst := m.settingsFor(keyType)
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
	m.limiters[keyType] = limiter
	return limiter
}

func (m *RateLimiters) settingsFor(keyType KeyType) (rpm, burst int) {
	var rl config.RateLimit
	switch keyType {
	case ProKey:
		rl, rpm = m.cfg.Pro, defaultProRPM
	case DemoKey:
		rl, rpm = m.cfg.Demo, defaultDemoRPM
	default:
		rl, rpm = m.cfg.NoKey, defaultNoKeyRPM
	}

	if rl.RateLimitPerMinute > 0 {
		rpm = rl.RateLimitPerMinute
	}
	burst = rl.Burst
	if burst <= 0 {
		// Allow a short burst of one second's worth of requests
		burst = rpm/60 + 1
	}
	return rpm, burst
}
