package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coindash/market-data/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(config.CacheConfig{})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	return s
}

func TestService_SetAndGet(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Set(map[string][]byte{"k": []byte("v")}, time.Minute))

	found, missing, err := s.Get([]string{"k", "other"})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), found["k"])
	assert.Equal(t, []string{"other"}, missing)
}

func TestService_Delete(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Set(map[string][]byte{"k": []byte("v")}, time.Minute))
	s.Delete([]string{"k"})

	found, missing, err := s.Get([]string{"k"})
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Equal(t, []string{"k"}, missing)
}

func TestService_GetOrLoad(t *testing.T) {
	s := newTestService(t)

	loaderCalls := 0
	loader := func(keys []string) (map[string][]byte, error) {
		loaderCalls++
		loaded := make(map[string][]byte)
		for _, key := range keys {
			loaded[key] = []byte("loaded:" + key)
		}
		return loaded, nil
	}

	found, err := s.GetOrLoad([]string{"a", "b"}, loader, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("loaded:a"), found["a"])
	assert.Equal(t, []byte("loaded:b"), found["b"])
	assert.Equal(t, 1, loaderCalls)

	// Second read is served from cache
	found, err = s.GetOrLoad([]string{"a", "b"}, loader, time.Minute)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, 1, loaderCalls)
}

func TestService_GetOrLoadPartialMiss(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Set(map[string][]byte{"cached": []byte("old")}, time.Minute))

	var askedFor []string
	loader := func(keys []string) (map[string][]byte, error) {
		askedFor = keys
		return map[string][]byte{"fresh": []byte("new")}, nil
	}

	found, err := s.GetOrLoad([]string{"cached", "fresh"}, loader, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, askedFor)
	assert.Equal(t, []byte("old"), found["cached"])
	assert.Equal(t, []byte("new"), found["fresh"])
}

func TestService_GetOrLoadLoaderError(t *testing.T) {
	s := newTestService(t)

	loadErr := errors.New("upstream down")
	_, err := s.GetOrLoad([]string{"k"}, func(keys []string) (map[string][]byte, error) {
		return nil, loadErr
	}, time.Minute)
	assert.ErrorIs(t, err, loadErr)
}

func TestService_GetOrLoadEmptyKeys(t *testing.T) {
	s := newTestService(t)

	found, err := s.GetOrLoad(nil, func(keys []string) (map[string][]byte, error) {
		t.Error("loader must not run without keys")
		return nil, nil
	}, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestService_StatsWithoutRedis(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Set(map[string][]byte{"k": []byte("v")}, time.Minute))

	stats := s.Stats()
	assert.Equal(t, 1, stats.GoCacheItems)
	assert.False(t, stats.RedisEnabled)
}
