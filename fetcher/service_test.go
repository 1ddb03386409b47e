package fetcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coindash/market-data/cache"
	"github.com/coindash/market-data/coingecko"
	mock_coingecko "github.com/coindash/market-data/coingecko/mocks"
	"github.com/coindash/market-data/config"
)

func newTestFetcher(t *testing.T, client coingecko.APIClient, mutate func(*config.FetcherConfig)) *Service {
	t.Helper()

	cfg := &config.Config{
		Client:  config.GetDefaultClientConfig(),
		Fetcher: config.GetDefaultFetcherConfig(),
		Cache:   config.CacheConfig{},
	}
	// Keep the periodic warm-up out of the way so expectations only
	// cover explicit calls
	cfg.Fetcher.RefreshInterval = 0
	if mutate != nil {
		mutate(&cfg.Fetcher)
	}

	cacheService := cache.NewService(cfg.Cache)
	require.NoError(t, cacheService.Start(context.Background()))
	t.Cleanup(cacheService.Stop)

	s := NewService(cacheService, cfg, client)
	t.Cleanup(s.Stop)
	return s
}

func TestService_TopCoinsCachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	mockClient.EXPECT().
		ListTopCoins(gomock.Any(), 10).
		Return([]coingecko.CoinSummary{{ID: "bitcoin"}}, nil).
		Times(1)

	s := newTestFetcher(t, mockClient, nil)

	for i := 0; i < 3; i++ {
		coins, err := s.TopCoins(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, coins, 1)
		assert.Equal(t, "bitcoin", coins[0].ID)
	}
}

func TestService_ConcurrentLoadsShareOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	mockClient.EXPECT().
		ListTopCoins(gomock.Any(), 10).
		DoAndReturn(func(ctx context.Context, limit int) ([]coingecko.CoinSummary, error) {
			time.Sleep(50 * time.Millisecond)
			return []coingecko.CoinSummary{{ID: "bitcoin"}}, nil
		}).
		Times(1)

	s := newTestFetcher(t, mockClient, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coins, err := s.TopCoins(context.Background(), 10)
			assert.NoError(t, err)
			assert.Len(t, coins, 1)
		}()
	}
	wg.Wait()
}

func TestService_StaleEntryServedWhileRefreshing(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	first := mockClient.EXPECT().
		ListTopCoins(gomock.Any(), 10).
		Return([]coingecko.CoinSummary{{ID: "bitcoin", CurrentPrice: 100}}, nil)
	mockClient.EXPECT().
		ListTopCoins(gomock.Any(), 10).
		Return([]coingecko.CoinSummary{{ID: "bitcoin", CurrentPrice: 200}}, nil).
		After(first)

	s := newTestFetcher(t, mockClient, func(fc *config.FetcherConfig) {
		fc.TopCoinsTTL = 50 * time.Millisecond
	})

	sub := s.SubscribeUpdates()
	defer sub.Cancel()

	coins, err := s.TopCoins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, float64(100), coins[0].CurrentPrice)

	// Let the entry go stale but not expire
	time.Sleep(60 * time.Millisecond)

	// The stale snapshot is returned immediately, a refresh runs behind it
	coins, err = s.TopCoins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, float64(100), coins[0].CurrentPrice)

	select {
	case <-sub.Chan():
	case <-time.After(2 * time.Second):
		t.Fatal("expected an update event after the background refresh")
	}

	coins, err = s.TopCoins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, float64(200), coins[0].CurrentPrice)
}

func TestService_SearchEnrichedMergesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	rank := 8
	mockClient.EXPECT().
		SearchCoins(gomock.Any(), "coin").
		Return([]coingecko.SearchHit{
			{ID: "dogecoin", Name: "Dogecoin", MarketCapRank: &rank},
			{ID: "greencoin", Name: "Greencoin", Large: "green.png"},
		}, nil)
	mockClient.EXPECT().
		GetCoinsByIDs(gomock.Any(), []string{"dogecoin", "greencoin"}).
		Return([]coingecko.CoinSummary{
			{ID: "dogecoin", Name: "Dogecoin", CurrentPrice: 0.1},
		}, nil)

	s := newTestFetcher(t, mockClient, nil)

	coins, err := s.SearchEnriched(context.Background(), "coin")
	require.NoError(t, err)
	require.Len(t, coins, 2)

	assert.Equal(t, "dogecoin", coins[0].ID)
	assert.Equal(t, float64(0.1), coins[0].CurrentPrice)

	// The un-enriched hit keeps its place with zeroed numerics
	assert.Equal(t, "greencoin", coins[1].ID)
	assert.Equal(t, "green.png", coins[1].Image)
	assert.Equal(t, float64(0), coins[1].CurrentPrice)
}

func TestService_CoinDetailCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	mockClient.EXPECT().
		GetCoinDetail(gomock.Any(), "bitcoin").
		Return(&coingecko.CoinDetail{CoinSummary: coingecko.CoinSummary{ID: "bitcoin"}}, nil).
		Times(1)

	s := newTestFetcher(t, mockClient, nil)

	for i := 0; i < 2; i++ {
		detail, err := s.CoinDetail(context.Background(), "bitcoin")
		require.NoError(t, err)
		assert.Equal(t, "bitcoin", detail.ID)
	}
}

func TestService_RateLimitErrorArmsGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	mockClient.EXPECT().
		SearchCoins(gomock.Any(), "bitcoin").
		Return(nil, &coingecko.APIError{
			Message:     "Too many requests. Please wait before trying again.",
			Status:      429,
			IsRateLimit: true,
			RetryAfter:  30,
		})

	s := newTestFetcher(t, mockClient, nil)

	_, err := s.Search(context.Background(), "bitcoin")
	require.Error(t, err)

	apiErr, ok := coingecko.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsRateLimit)

	state := s.RateLimit()
	assert.True(t, state.IsRateLimited)
	assert.False(t, state.CanRetry)
	assert.False(t, s.RetryRateLimited())
}

func TestService_SuccessClearsGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	mockClient.EXPECT().
		SearchCoins(gomock.Any(), "bitcoin").
		Return(nil, &coingecko.APIError{Status: 429, IsRateLimit: true, RetryAfter: 30})
	mockClient.EXPECT().
		GetTrendingCoins(gomock.Any()).
		Return(&coingecko.TrendingResponse{}, nil)

	s := newTestFetcher(t, mockClient, nil)

	_, err := s.Search(context.Background(), "bitcoin")
	require.Error(t, err)
	require.True(t, s.RateLimit().IsRateLimited)

	_, err = s.Trending(context.Background())
	require.NoError(t, err)
	assert.False(t, s.RateLimit().IsRateLimited)
}

func TestService_ErrorsAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)

	failed := mockClient.EXPECT().
		GetCoinChart(gomock.Any(), "bitcoin", 7).
		Return(nil, &coingecko.APIError{Message: "upstream broke", Status: 502})
	mockClient.EXPECT().
		GetCoinChart(gomock.Any(), "bitcoin", 7).
		Return([]coingecko.ChartPoint{{Timestamp: 1, Price: 2}}, nil).
		After(failed)

	s := newTestFetcher(t, mockClient, nil)

	_, err := s.CoinChart(context.Background(), "bitcoin", 7)
	require.Error(t, err)

	points, err := s.CoinChart(context.Background(), "bitcoin", 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
}

func TestService_HealthyDelegatesToClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock_coingecko.NewMockAPIClient(ctrl)
	mockClient.EXPECT().Healthy().Return(true)

	s := newTestFetcher(t, mockClient, nil)
	assert.True(t, s.Healthy())
}
