package coingecko

import (
	"strings"

	"github.com/coindash/market-data/config"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

// isDemoKey determines if a key is a demo key by its shape
func isDemoKey(key string) bool {
	return strings.HasPrefix(key, "demo_") ||
		strings.HasPrefix(key, "CG-") ||
		strings.Contains(strings.ToLower(key), "demo")
}

// SelectKey picks the API key to use from the loaded tokens: the first
// Pro key wins, then the first Demo key, then no key at all.
func SelectKey(tokens *config.APITokens) (string, KeyType) {
	if tokens == nil {
		return "", NoKey
	}

	var demo string
	for _, key := range tokens.Tokens {
		if key == "" {
			continue
		}
		if isDemoKey(key) {
			if demo == "" {
				demo = key
			}
			continue
		}
		return key, ProKey
	}
	for _, key := range tokens.DemoTokens {
		if key != "" && demo == "" {
			demo = key
		}
	}

	if demo != "" {
		return demo, DemoKey
	}
	return "", NoKey
}

// GetAPIBaseURL returns the API base URL for the key type, honoring
// config overrides (used by tests to point at a local server)
func GetAPIBaseURL(cfg *config.Config, keyType KeyType) string {
	if keyType == ProKey {
		if cfg.OverrideCoingeckoProURL != "" {
			return cfg.OverrideCoingeckoProURL
		}
		return COINGECKO_PRO_URL
	}
	if cfg.OverrideCoingeckoPublicURL != "" {
		return cfg.OverrideCoingeckoPublicURL
	}
	return COINGECKO_PUBLIC_URL
}
