package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coindash/market-data/config"
)

// Service implements Cache with a go-cache L1 and an optional Redis L2.
// Reads check L1, then L2 (refilling L1 on an L2 hit), then the loader.
type Service struct {
	goCache *GoCache
	redis   *RedisCache
	config  config.CacheConfig
}

// NewService creates a new cache service with the given configuration
func NewService(cfg config.CacheConfig) *Service {
	defaultExpiration := cfg.GoCache.DefaultExpiration
	cleanupInterval := cfg.GoCache.CleanupInterval
	if defaultExpiration <= 0 {
		defaultExpiration = 5 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	s := &Service{
		goCache: NewGoCache(defaultExpiration, cleanupInterval),
		config:  cfg,
	}

	if cfg.Redis.Enabled {
		s.redis = NewRedisCache(cfg.Redis)
	}

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			// Degrade to L1-only rather than failing startup
			log.Printf("Cache: Redis unavailable (%v), running in-memory only", err)
			s.redis.Close()
			s.redis = nil
		}
	}

	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
	if s.redis != nil {
		s.redis.Close()
	}
}

// Get retrieves data by keys, checking L1 and then L2. L2 hits are
// written back to L1 with the default expiration.
func (s *Service) Get(keys []string) (map[string][]byte, []string, error) {
	l1 := s.goCache.Get(keys)
	found := l1.Found
	missing := l1.MissingKeys

	if len(missing) > 0 && s.redis != nil {
		l2 := s.redis.Get(missing)
		if len(l2.Found) > 0 {
			s.goCache.Set(l2.Found, 0)
			for key, value := range l2.Found {
				found[key] = value
			}
		}
		missing = l2.MissingKeys
	}

	return found, missing, nil
}

// Set stores data in every level with the specified TTL
func (s *Service) Set(data map[string][]byte, ttl time.Duration) error {
	s.goCache.Set(data, ttl)
	if s.redis != nil {
		s.redis.Set(data, ttl)
	}
	return nil
}

// Delete removes entries from every level
func (s *Service) Delete(keys []string) {
	s.goCache.Delete(keys)
	if s.redis != nil {
		s.redis.Delete(keys)
	}
}

// GetOrLoad retrieves data by keys from cache or loads the missing
// ones using loader and stores them with the given ttl
func (s *Service) GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error) {
	if len(keys) == 0 {
		return make(map[string][]byte), nil
	}

	found, missing, err := s.Get(keys)
	if err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		loaded, err := loader(missing)
		if err != nil {
			return nil, fmt.Errorf("failed to load data: %w", err)
		}

		if len(loaded) > 0 {
			if err := s.Set(loaded, ttl); err != nil {
				return nil, err
			}
			for key, value := range loaded {
				found[key] = value
			}
		}
	}

	return found, nil
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		GoCacheItems: s.goCache.ItemCount(),
		RedisEnabled: s.redis != nil,
	}
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	GoCacheItems int  // Number of items in the L1 cache
	RedisEnabled bool // Whether the Redis level is active
}
