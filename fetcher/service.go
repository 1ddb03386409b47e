package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coindash/market-data/cache"
	"github.com/coindash/market-data/coingecko"
	"github.com/coindash/market-data/config"
	"github.com/coindash/market-data/events"
	"github.com/coindash/market-data/metrics"
	"github.com/coindash/market-data/scheduler"
	"golang.org/x/sync/singleflight"
)

// flightTimeout bounds one upstream load including all retry attempts.
// Loads run on the service context so an abandoning caller does not
// cancel the flight for other waiters.
const flightTimeout = 90 * time.Second

// envelope wraps a cached value with its fetch time so staleness can
// be decided independently of the cache's expiration
type envelope struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt int64           `json:"fetched_at"` // unix milliseconds
}

// Service orchestrates data fetching for the dashboard: responses are
// cached under keys derived from the operation and its parameters,
// concurrent loads of the same key are deduplicated, and entries past
// their staleness window are served immediately while a background
// refresh replaces them.
type Service struct {
	cache               cache.Cache
	cfg                 *config.Config
	client              coingecko.APIClient
	group               singleflight.Group
	subscriptionManager *events.SubscriptionManager
	refresher           *scheduler.Scheduler
	gate                *RateLimitGate
	writers             map[string]*metrics.MetricsWriter

	refreshMu  sync.Mutex
	refreshing map[string]bool

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// NewService creates the fetcher on top of a cache and an API client
func NewService(cacheService cache.Cache, cfg *config.Config, client coingecko.APIClient) *Service {
	s := &Service{
		cache:               cacheService,
		cfg:                 cfg,
		client:              client,
		subscriptionManager: events.NewSubscriptionManager(),
		refreshing:          make(map[string]bool),
		writers:             make(map[string]*metrics.MetricsWriter),
	}

	for _, op := range []string{
		metrics.OpTopCoins, metrics.OpSearch, metrics.OpByIDs,
		metrics.OpDetail, metrics.OpChart, metrics.OpTrending,
	} {
		s.writers[op] = metrics.NewMetricsWriter(op)
	}

	// When a rate-limit countdown elapses, re-warm the landing data
	// and tell push consumers to re-read
	s.gate = NewRateLimitGate(func() {
		log.Printf("Fetcher: rate limit countdown elapsed, refresh allowed again")
		if s.ctx != nil {
			go s.refreshTopCoins(s.ctx)
		}
	})

	s.refresher = scheduler.New(cfg.Fetcher.RefreshInterval, s.refreshTopCoins)

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	s.refresher.Start(s.ctx, true)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.refresher != nil {
		s.refresher.Stop()
	}
	if s.gate != nil {
		s.gate.Stop()
	}
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
}

// SubscribeUpdates returns a subscription fired whenever a cached
// entry is replaced by fresh data
func (s *Service) SubscribeUpdates() *events.Subscription {
	return s.subscriptionManager.Subscribe()
}

// RateLimit returns the current rate-limit gate state
func (s *Service) RateLimit() RateLimitState {
	return s.gate.State()
}

// RetryRateLimited clears the gate once the countdown allows it and
// reports whether the retry was accepted
func (s *Service) RetryRateLimited() bool {
	return s.gate.Retry()
}

// Healthy reports whether the upstream client has succeeded at least once
func (s *Service) Healthy() bool {
	return s.client.Healthy()
}

// TopCoins returns the highest-market-cap coins, cached for the
// top-coins staleness window
func (s *Service) TopCoins(ctx context.Context, limit int) ([]coingecko.CoinSummary, error) {
	if limit <= 0 {
		limit = coingecko.DefaultTopCoinsLimit
	}

	key := fmt.Sprintf("top_coins:%d", limit)
	var coins []coingecko.CoinSummary
	err := s.load(ctx, metrics.OpTopCoins, key, s.cfg.Fetcher.GetTopCoinsTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.ListTopCoins(fctx, limit)
	}, &coins)
	return coins, err
}

// Search returns search hits for a query, cached for the search window.
// Minimum-query-length gating belongs to the caller.
func (s *Service) Search(ctx context.Context, query string) ([]coingecko.SearchHit, error) {
	key := "search:" + query
	var hits []coingecko.SearchHit
	err := s.load(ctx, metrics.OpSearch, key, s.cfg.Fetcher.GetSearchTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.SearchCoins(fctx, query)
	}, &hits)
	return hits, err
}

// SearchEnriched resolves search hits and then batch-fetches full
// market summaries for exactly those ids, merging per MergeEnriched
func (s *Service) SearchEnriched(ctx context.Context, query string) ([]coingecko.CoinSummary, error) {
	key := "search_enriched:" + query
	var coins []coingecko.CoinSummary
	err := s.load(ctx, metrics.OpSearch, key, s.cfg.Fetcher.GetSearchTTL(), func(fctx context.Context) (interface{}, error) {
		hits, err := s.client.SearchCoins(fctx, query)
		if err != nil {
			return nil, err
		}

		ids := make([]string, 0, len(hits))
		for _, hit := range hits {
			ids = append(ids, hit.ID)
		}

		enriched, err := s.client.GetCoinsByIDs(fctx, ids)
		if err != nil {
			return nil, err
		}

		return MergeEnriched(hits, enriched), nil
	}, &coins)
	return coins, err
}

// CoinDetail returns one coin's normalized record, cached for the
// detail window
func (s *Service) CoinDetail(ctx context.Context, id string) (*coingecko.CoinDetail, error) {
	key := "coin_detail:" + id
	var detail coingecko.CoinDetail
	err := s.load(ctx, metrics.OpDetail, key, s.cfg.Fetcher.GetDetailTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.GetCoinDetail(fctx, id)
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// CoinChart returns a coin's price history, cached for the chart window
func (s *Service) CoinChart(ctx context.Context, id string, days int) ([]coingecko.ChartPoint, error) {
	key := fmt.Sprintf("coin_chart:%s:%d", id, days)
	var points []coingecko.ChartPoint
	err := s.load(ctx, metrics.OpChart, key, s.cfg.Fetcher.GetChartTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.GetCoinChart(fctx, id, days)
	}, &points)
	return points, err
}

// Trending returns the trending coins, cached for the trending window
func (s *Service) Trending(ctx context.Context) (*coingecko.TrendingResponse, error) {
	key := "trending"
	var resp coingecko.TrendingResponse
	err := s.load(ctx, metrics.OpTrending, key, s.cfg.Fetcher.GetTrendingTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.GetTrendingCoins(fctx)
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// load is the shared read path: fresh cache hit, stale hit plus
// background refresh, or a deduplicated upstream load on a miss
func (s *Service) load(ctx context.Context, op, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error), out interface{}) error {
	writer := s.writers[op]
	start := time.Now()

	if env, ok := s.getCached(key); ok {
		age := time.Since(time.UnixMilli(env.FetchedAt))
		if age <= ttl {
			writer.RecordCacheLookup("hit")
			return json.Unmarshal(env.Data, out)
		}

		writer.RecordCacheLookup("stale")
		s.refreshInBackground(op, key, ttl, fetch)
		return json.Unmarshal(env.Data, out)
	}

	writer.RecordCacheLookup("miss")

	data, err := s.loadShared(ctx, op, key, ttl, fetch)
	if err != nil {
		return err
	}

	writer.RecordFetchDuration(start)
	return json.Unmarshal(data, out)
}

// loadShared funnels concurrent loads of the same key through one
// upstream request. The flight runs on the service context: a caller
// that goes away just stops waiting, the result still fills the cache.
func (s *Service) loadShared(ctx context.Context, op, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error)) ([]byte, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(s.serviceContext(), flightTimeout)
		defer cancel()

		value, err := fetch(fctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(value)
		if err != nil {
			return nil, &coingecko.APIError{Message: fmt.Sprintf("error encoding %s result: %v", op, err)}
		}

		s.storeEnvelope(key, data, ttl)
		s.gate.Clear()
		return data, nil
	})

	select {
	case <-ctx.Done():
		// The caller abandoned interest; the flight keeps running for
		// other waiters and the cache fill, its result is discarded here
		return nil, &coingecko.APIError{Message: ctx.Err().Error()}
	case res := <-ch:
		if res.Err != nil {
			s.gate.Observe(res.Err)
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// refreshInBackground replaces a stale entry without blocking the
// caller; at most one refresh per key runs at a time
func (s *Service) refreshInBackground(op, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error)) {
	s.refreshMu.Lock()
	if s.refreshing[key] {
		s.refreshMu.Unlock()
		return
	}
	s.refreshing[key] = true
	s.refreshMu.Unlock()

	go func() {
		defer func() {
			s.refreshMu.Lock()
			delete(s.refreshing, key)
			s.refreshMu.Unlock()
		}()

		if _, err := s.loadShared(s.serviceContext(), op, key, ttl, fetch); err != nil {
			log.Printf("Fetcher: background refresh of %s failed: %v", key, err)
			return
		}

		s.subscriptionManager.Emit(s.serviceContext())
	}()
}

// refreshTopCoins is the periodic warm-up cycle for the landing data
func (s *Service) refreshTopCoins(ctx context.Context) {
	if s.gate.State().IsRateLimited {
		// Honor the advisory wait instead of hammering the API
		return
	}

	limit := s.cfg.Fetcher.TopCoinsLimit
	if limit <= 0 {
		limit = coingecko.DefaultTopCoinsLimit
	}

	start := time.Now()
	key := fmt.Sprintf("top_coins:%d", limit)
	_, err := s.loadShared(ctx, metrics.OpTopCoins, key, s.cfg.Fetcher.GetTopCoinsTTL(), func(fctx context.Context) (interface{}, error) {
		return s.client.ListTopCoins(fctx, limit)
	})
	if err != nil {
		log.Printf("Fetcher: top coins refresh cycle failed: %v", err)
		return
	}

	s.writers[metrics.OpTopCoins].RecordFetchDuration(start)
	s.subscriptionManager.Emit(s.serviceContext())
}

func (s *Service) getCached(key string) (*envelope, bool) {
	found, _, err := s.cache.Get([]string{key})
	if err != nil {
		return nil, false
	}

	data, ok := found[key]
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	return &env, true
}

// storeEnvelope caches data with an expiry of twice the staleness
// window, leaving room to serve a stale entry while it refreshes
func (s *Service) storeEnvelope(key string, data []byte, ttl time.Duration) {
	env := envelope{Data: data, FetchedAt: time.Now().UnixMilli()}
	envBytes, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := s.cache.Set(map[string][]byte{key: envBytes}, 2*ttl); err != nil {
		log.Printf("Fetcher: failed to cache %s: %v", key, err)
	}
}

func (s *Service) serviceContext() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
