package coingecko

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coindash/market-data/config"
)

func TestSelectKey(t *testing.T) {
	tests := []struct {
		name         string
		tokens       *config.APITokens
		expectedKey  string
		expectedType KeyType
	}{
		{"nil tokens", nil, "", NoKey},
		{"empty tokens", &config.APITokens{}, "", NoKey},
		{"pro key wins", &config.APITokens{Tokens: []string{"pro-key-1", "pro-key-2"}}, "pro-key-1", ProKey},
		{"demo shaped key in main list", &config.APITokens{Tokens: []string{"CG-abc123"}}, "CG-abc123", DemoKey},
		{"pro preferred over demo", &config.APITokens{Tokens: []string{"CG-abc123", "real-pro"}}, "real-pro", ProKey},
		{"dedicated demo list", &config.APITokens{DemoTokens: []string{"demo_key"}}, "demo_key", DemoKey},
		{"blank entries skipped", &config.APITokens{Tokens: []string{"", "pro"}}, "pro", ProKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, keyType := SelectKey(tt.tokens)
			assert.Equal(t, tt.expectedKey, key)
			assert.Equal(t, tt.expectedType, keyType)
		})
	}
}

func TestGetAPIBaseURL(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, COINGECKO_PUBLIC_URL, GetAPIBaseURL(cfg, NoKey))
	assert.Equal(t, COINGECKO_PUBLIC_URL, GetAPIBaseURL(cfg, DemoKey))
	assert.Equal(t, COINGECKO_PRO_URL, GetAPIBaseURL(cfg, ProKey))

	cfg.OverrideCoingeckoPublicURL = "http://localhost:1234"
	cfg.OverrideCoingeckoProURL = "http://localhost:5678"
	assert.Equal(t, "http://localhost:1234", GetAPIBaseURL(cfg, NoKey))
	assert.Equal(t, "http://localhost:5678", GetAPIBaseURL(cfg, ProKey))
}
