package config

import "time"

// FetcherConfig defines staleness windows and background refresh
// behavior for the data-fetching layer. A cached entry older than its
// window is still served but becomes eligible for a background refresh.
type FetcherConfig struct {
	// TopCoinsTTL is the staleness window for the top-coins list
	TopCoinsTTL time.Duration `yaml:"top_coins_ttl"`

	// SearchTTL is the staleness window for text search results
	SearchTTL time.Duration `yaml:"search_ttl"`

	// DetailTTL is the staleness window for a single coin's detail record
	DetailTTL time.Duration `yaml:"detail_ttl"`

	// ChartTTL is the staleness window for price history series
	ChartTTL time.Duration `yaml:"chart_ttl"`

	// TrendingTTL is the staleness window for trending coins
	TrendingTTL time.Duration `yaml:"trending_ttl"`

	// TopCoinsLimit is the list size kept warm by the refresh cycle
	TopCoinsLimit int `yaml:"top_coins_limit"`

	// RefreshInterval drives the periodic top-coins refresh cycle;
	// zero disables it
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// GetDefaultFetcherConfig returns default fetcher configuration
func GetDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		TopCoinsTTL:     5 * time.Minute,
		SearchTTL:       10 * time.Minute,
		DetailTTL:       2 * time.Minute,
		ChartTTL:        5 * time.Minute,
		TrendingTTL:     10 * time.Minute,
		TopCoinsLimit:   20,
		RefreshInterval: 5 * time.Minute,
	}
}

// GetTopCoinsTTL returns the configured window or the default
func (c *FetcherConfig) GetTopCoinsTTL() time.Duration {
	if c.TopCoinsTTL > 0 {
		return c.TopCoinsTTL
	}
	return 5 * time.Minute
}

func (c *FetcherConfig) GetSearchTTL() time.Duration {
	if c.SearchTTL > 0 {
		return c.SearchTTL
	}
	return 10 * time.Minute
}

func (c *FetcherConfig) GetDetailTTL() time.Duration {
	if c.DetailTTL > 0 {
		return c.DetailTTL
	}
	return 2 * time.Minute
}

func (c *FetcherConfig) GetChartTTL() time.Duration {
	if c.ChartTTL > 0 {
		return c.ChartTTL
	}
	return 5 * time.Minute
}

func (c *FetcherConfig) GetTrendingTTL() time.Duration {
	if c.TrendingTTL > 0 {
		return c.TrendingTTL
	}
	return 10 * time.Minute
}
