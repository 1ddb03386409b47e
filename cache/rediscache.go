package cache

import (
	"context"
	"time"

	"github.com/coindash/market-data/config"
	"github.com/go-redis/redis/v8"
)

const redisOpTimeout = 2 * time.Second

// RedisCache is the optional L2 level. It survives process restarts
// and is shared between instances; entries carry the same TTLs as L1.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache creates a Redis-backed cache level from config
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
	}
}

// Ping verifies the Redis connection
func (rc *RedisCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return rc.client.Ping(ctx).Err()
}

// Get retrieves values for the given keys with a single MGET
func (rc *RedisCache) Get(keys []string) GetResult {
	result := GetResult{
		Found:       make(map[string][]byte),
		MissingKeys: make([]string, 0),
	}
	if len(keys) == 0 {
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = rc.keyPrefix + key
	}

	values, err := rc.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		// Treat a Redis failure as a full miss; L1 and the loader
		// still serve the request
		result.MissingKeys = append(result.MissingKeys, keys...)
		return result
	}

	for i, value := range values {
		if value == nil {
			result.MissingKeys = append(result.MissingKeys, keys[i])
			continue
		}
		if s, ok := value.(string); ok {
			result.Found[keys[i]] = []byte(s)
		} else {
			result.MissingKeys = append(result.MissingKeys, keys[i])
		}
	}

	return result
}

// Set stores key-value pairs with the specified timeout
func (rc *RedisCache) Set(data map[string][]byte, timeout time.Duration) {
	if len(data) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	pipe := rc.client.Pipeline()
	for key, value := range data {
		pipe.Set(ctx, rc.keyPrefix+key, value, timeout)
	}
	// Best effort: a failed write only costs a later cache miss
	_, _ = pipe.Exec(ctx)
}

// Delete removes items by keys
func (rc *RedisCache) Delete(keys []string) {
	if len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = rc.keyPrefix + key
	}
	_ = rc.client.Del(ctx, prefixed...).Err()
}

// Close releases the Redis connection
func (rc *RedisCache) Close() {
	_ = rc.client.Close()
}
