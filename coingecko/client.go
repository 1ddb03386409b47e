package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/coindash/market-data/config"
	"github.com/coindash/market-data/metrics"
)

const (
	MARKETS_API_PATH       = "/api/v3/coins/markets"
	SEARCH_API_PATH        = "/api/v3/search"
	TRENDING_API_PATH      = "/api/v3/search/trending"
	COIN_API_PATH_TEMPLATE = "/api/v3/coins/%s"
	CHART_API_PATH_TEMPLATE = "/api/v3/coins/%s/market_chart"

	// DefaultTopCoinsLimit is used when the caller passes limit <= 0
	DefaultTopCoinsLimit = 20

	// batchPerPage is the page size for batched id lookups
	batchPerPage = 100
)

// APIClient defines the interface for CoinGecko API operations
//
//go:generate mockgen -destination=mocks/client.go -package=mock_coingecko . APIClient
type APIClient interface {
	// ListTopCoins fetches the limit highest-market-cap coins
	ListTopCoins(ctx context.Context, limit int) ([]CoinSummary, error)
	// SearchCoins searches coins by free text. Minimum-query-length
	// gating is the caller's concern, not this layer's.
	SearchCoins(ctx context.Context, query string) ([]SearchHit, error)
	// GetCoinsByIDs batch-fetches summaries for a fixed id set;
	// an empty set resolves to an empty slice without a request
	GetCoinsByIDs(ctx context.Context, ids []string) ([]CoinSummary, error)
	// GetCoinDetail fetches and normalizes one coin's full record
	GetCoinDetail(ctx context.Context, id string) (*CoinDetail, error)
	// GetCoinChart fetches a price history series in ascending
	// timestamp order, hourly granularity when days <= 1
	GetCoinChart(ctx context.Context, id string, days int) ([]ChartPoint, error)
	// GetTrendingCoins fetches the trending list
	GetTrendingCoins(ctx context.Context) (*TrendingResponse, error)
	// Healthy reports whether at least one fetch has succeeded
	Healthy() bool
}

// Client implements APIClient against the CoinGecko REST API
type Client struct {
	cfg             *config.Config
	apiKey          string
	keyType         KeyType
	currency        string
	http            map[string]*HTTPClient
	successfulFetch atomic.Bool
}

// NewClient creates a CoinGecko client. One retrying HTTP client is
// kept per operation so each feeds its own metrics, while all of them
// share the per-key-type upstream rate limiter.
func NewClient(cfg *config.Config) *Client {
	apiKey, keyType := SelectKey(cfg.APITokens)
	limiters := NewRateLimiters(cfg.APIKeys)

	currency := cfg.Client.Currency
	if currency == "" {
		currency = "usd"
	}

	c := &Client{
		cfg:      cfg,
		apiKey:   apiKey,
		keyType:  keyType,
		currency: currency,
		http:     make(map[string]*HTTPClient),
	}

	operations := []string{
		metrics.OpTopCoins, metrics.OpSearch, metrics.OpByIDs,
		metrics.OpDetail, metrics.OpChart, metrics.OpTrending,
	}
	for _, op := range operations {
		opts := RetryOptionsFromConfig(cfg.Client)
		opts.LogPrefix = "CoinGecko-" + op
		c.http[op] = NewHTTPClient(opts, metrics.NewMetricsWriter(op), limiters.ForKeyType(keyType))
	}

	return c
}

// Currency returns the reference currency of this client
func (c *Client) Currency() string {
	return c.currency
}

// Healthy reports whether the client has completed a successful fetch
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

func (c *Client) builder(apiPath string) *RequestBuilder {
	baseURL := GetAPIBaseURL(c.cfg, c.keyType)
	return NewRequestBuilder(baseURL, apiPath).WithAPIKey(c.apiKey, c.keyType)
}

// execute builds and runs the request for op, returning the body
func (c *Client) execute(ctx context.Context, op string, rb *RequestBuilder) ([]byte, error) {
	req, err := rb.Build(ctx)
	if err != nil {
		return nil, newTransportError(err)
	}

	body, err := c.http[op].Execute(req)
	if err != nil {
		return nil, err
	}

	c.successfulFetch.Store(true)
	return body, nil
}

// ListTopCoins fetches the limit highest-market-cap coins
func (c *Client) ListTopCoins(ctx context.Context, limit int) ([]CoinSummary, error) {
	if limit <= 0 {
		limit = DefaultTopCoinsLimit
	}

	rb := c.builder(MARKETS_API_PATH).
		WithCurrency(c.currency).
		With("order", "market_cap_desc").
		With("per_page", strconv.Itoa(limit)).
		With("page", "1").
		With("sparkline", "false").
		With("price_change_percentage", "24h")

	body, err := c.execute(ctx, metrics.OpTopCoins, rb)
	if err != nil {
		return nil, err
	}

	var coins []CoinSummary
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing markets response: %v", err)}
	}

	log.Printf("CoinGecko: Received %d top coins", len(coins))
	return coins, nil
}

// SearchCoins searches coins by free text
func (c *Client) SearchCoins(ctx context.Context, query string) ([]SearchHit, error) {
	rb := c.builder(SEARCH_API_PATH).With("query", query)

	body, err := c.execute(ctx, metrics.OpSearch, rb)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing search response: %v", err)}
	}

	log.Printf("CoinGecko: Search %q returned %d hits", query, len(resp.Coins))
	return resp.Coins, nil
}

// GetCoinsByIDs batch-fetches summaries for the given ids. An empty id
// set resolves immediately without touching the network.
func (c *Client) GetCoinsByIDs(ctx context.Context, ids []string) ([]CoinSummary, error) {
	if len(ids) == 0 {
		return []CoinSummary{}, nil
	}

	rb := c.builder(MARKETS_API_PATH).
		WithCurrency(c.currency).
		With("ids", strings.Join(ids, ",")).
		With("order", "market_cap_desc").
		With("per_page", strconv.Itoa(batchPerPage)).
		With("page", "1").
		With("sparkline", "false").
		With("price_change_percentage", "24h")

	body, err := c.execute(ctx, metrics.OpByIDs, rb)
	if err != nil {
		return nil, err
	}

	var coins []CoinSummary
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing markets response: %v", err)}
	}

	return coins, nil
}

// GetCoinDetail fetches one coin's record and normalizes it to the
// flat CoinDetail shape. A successful HTTP response without an id is a
// data-integrity failure: it must not reach consumers as a valid record.
func (c *Client) GetCoinDetail(ctx context.Context, id string) (*CoinDetail, error) {
	rb := c.builder(fmt.Sprintf(COIN_API_PATH_TEMPLATE, id)).
		With("localization", "false").
		With("tickers", "false").
		With("market_data", "true").
		With("community_data", "false").
		With("developer_data", "false").
		With("sparkline", "false")

	body, err := c.execute(ctx, metrics.OpDetail, rb)
	if err != nil {
		return nil, err
	}

	var raw CoinDetailRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing coin detail response: %v", err)}
	}

	if raw.ID == "" {
		return nil, &APIError{Message: fmt.Sprintf("coin detail response for %q is missing an id", id)}
	}

	detail := NormalizeCoinDetail(&raw, c.currency)
	return &detail, nil
}

// GetCoinChart fetches the price history series for a coin. Hourly
// granularity is requested for one-day windows, daily otherwise. The
// upstream ordering of the series is passed through untouched.
func (c *Client) GetCoinChart(ctx context.Context, id string, days int) ([]ChartPoint, error) {
	interval := "daily"
	if days <= 1 {
		interval = "hourly"
	}

	rb := c.builder(fmt.Sprintf(CHART_API_PATH_TEMPLATE, id)).
		WithCurrency(c.currency).
		With("days", strconv.Itoa(days)).
		With("interval", interval)

	body, err := c.execute(ctx, metrics.OpChart, rb)
	if err != nil {
		return nil, err
	}

	var resp marketChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing market chart response: %v", err)}
	}

	points := make([]ChartPoint, 0, len(resp.Prices))
	for _, pair := range resp.Prices {
		points = append(points, ChartPoint{
			Timestamp: int64(pair[0]),
			Price:     pair[1],
		})
	}

	log.Printf("CoinGecko: Received %d chart points for coin %s", len(points), id)
	return points, nil
}

// GetTrendingCoins fetches the trending list
func (c *Client) GetTrendingCoins(ctx context.Context) (*TrendingResponse, error) {
	rb := c.builder(TRENDING_API_PATH)

	body, err := c.execute(ctx, metrics.OpTrending, rb)
	if err != nil {
		return nil, err
	}

	var resp TrendingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("error parsing trending response: %v", err)}
	}

	return &resp, nil
}
