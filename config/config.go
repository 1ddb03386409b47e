package config

import (
	"encoding/json"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Client  ClientConfig  `yaml:"coingecko_client"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Cache   CacheConfig   `yaml:"cache"`
	APIKeys APIKeyConfig  `yaml:"api_keys"`

	TokensFile string `yaml:"tokens_file"`
	APITokens  *APITokens

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
	OverrideCoingeckoProURL    string `yaml:"override_coingecko_pro_url"`
}

// APITokens holds CoinGecko API keys loaded from a separate json file
type APITokens struct {
	Tokens     []string `json:"api_tokens"`
	DemoTokens []string `json:"demo_api_tokens,omitempty"`
}

// LoadConfig reads the yaml config file and fills unset sections with
// defaults. A missing tokens file is not an error: the public API is
// used without authentication.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Client:  GetDefaultClientConfig(),
		Fetcher: GetDefaultFetcherConfig(),
		Cache:   GetDefaultCacheConfig(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	apiTokens, err := LoadAPITokens(config.TokensFile)
	if err != nil {
		log.Printf("Warning: Error loading API tokens from %s: %v. Using public API without authentication.",
			config.TokensFile, err)
		config.APITokens = &APITokens{Tokens: []string{}}
	} else {
		config.APITokens = apiTokens
	}

	return config, nil
}

// LoadAPITokens loads API keys from a json file of the form
// {"api_tokens": [...], "demo_api_tokens": [...]}
func LoadAPITokens(filename string) (*APITokens, error) {
	if filename == "" {
		return &APITokens{Tokens: []string{}}, nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		// File doesn't exist, return empty tokens
		return &APITokens{Tokens: []string{}}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var tokens APITokens
	err = json.Unmarshal(data, &tokens)
	return &tokens, err
}
