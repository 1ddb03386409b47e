package cache

import "time"

// LoaderFunc defines a function for loading data by missing keys.
// The function receives the list of keys that are missing from the
// cache and should return a key->data map for those keys.
type LoaderFunc func(missingKeys []string) (map[string][]byte, error)

// Cache is the interface of the two-level cache service
type Cache interface {
	// GetOrLoad retrieves data by keys from cache or loads the missing
	// ones using loader. A ttl of 0 uses the cache's default expiration.
	GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error)

	// Get retrieves data by keys, returning found entries and the list
	// of missing keys
	Get(keys []string) (map[string][]byte, []string, error)

	// Set stores data with the specified TTL; 0 uses the default
	Set(data map[string][]byte, ttl time.Duration) error

	// Delete removes entries by keys
	Delete(keys []string)
}
