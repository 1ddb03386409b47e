package config

import "time"

// CacheConfig represents cache configuration
type CacheConfig struct {
	GoCache GoCacheConfig `yaml:"go_cache"`
	Redis   RedisConfig   `yaml:"redis"`
}

// GoCacheConfig configuration for the in-memory L1 cache
type GoCacheConfig struct {
	// DefaultExpiration default expiration time for cache items.
	// If 0, items never expire by default
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval interval for cleaning up expired items.
	// Should be less than DefaultExpiration
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RedisConfig configuration for the optional Redis L2 cache
type RedisConfig struct {
	// Enabled turns the Redis level on; the service runs L1-only
	// when false
	Enabled bool `yaml:"enabled"`

	// Addr is the host:port of the Redis server
	Addr string `yaml:"addr"`

	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// KeyPrefix namespaces this service's keys
	KeyPrefix string `yaml:"key_prefix"`
}

// GetDefaultCacheConfig returns default cache configuration
func GetDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled:   false,
			Addr:      "localhost:6379",
			KeyPrefix: "market-data:",
		},
	}
}
