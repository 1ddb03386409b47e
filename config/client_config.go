package config

import "time"

// ClientConfig defines configuration for the CoinGecko API client
type ClientConfig struct {
	// Currency is the reference currency every monetary field is
	// denominated in
	Currency string `yaml:"currency"`

	// RequestTimeout is the total per-request timeout including
	// reading the response body
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ConnectionTimeout bounds connection establishment
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// MaxAttempts is the total number of attempts per request,
	// including the first one
	MaxAttempts int `yaml:"max_attempts"`

	// BaseBackoff is the delay before the first retry; it doubles per
	// attempt up to MaxBackoff
	BaseBackoff time.Duration `yaml:"base_backoff"`

	// MaxBackoff caps the retry delay
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// GetDefaultClientConfig returns default client configuration
func GetDefaultClientConfig() ClientConfig {
	return ClientConfig{
		Currency:          "usd",
		RequestTimeout:    10 * time.Second,
		ConnectionTimeout: 10 * time.Second,
		MaxAttempts:       3,
		BaseBackoff:       1000 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
	}
}

// APIKeyConfig configures upstream rate limiting per CoinGecko key type
type APIKeyConfig struct {
	// Requests per minute and burst per type. If zero, defaults are used.
	Pro   RateLimit `yaml:"pro"`
	Demo  RateLimit `yaml:"demo"`
	NoKey RateLimit `yaml:"nokey"`
}

// RateLimit represents a simple rpm + burst pair
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`
}
