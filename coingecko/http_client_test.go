package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:       3,
		BaseBackoff:       5 * time.Millisecond,
		MaxBackoff:        20 * time.Millisecond,
		LogPrefix:         "CoinGecko-test",
		ConnectionTimeout: 2 * time.Second,
		RequestTimeout:    2 * time.Second,
	}
}

func executeAgainst(t *testing.T, server *httptest.Server, opts RetryOptions) ([]byte, error) {
	t.Helper()
	client := NewHTTPClient(opts, nil, nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	return client.Execute(req)
}

func TestHTTPClient_RetriesServerErrors(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := executeAgainst(t, server, testRetryOptions())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestHTTPClient_ExhaustsAttemptsOnPersistent5xx(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := executeAgainst(t, server, testRetryOptions())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestHTTPClient_NotFoundIsNeverRetried(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"coin not found"}`))
	}))
	defer server.Close()

	_, err := executeAgainst(t, server, testRetryOptions())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "coin not found", apiErr.Message)
	assert.False(t, apiErr.IsRateLimit)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "client errors must use a single attempt")
}

func TestHTTPClient_RateLimitSurfacesImmediately(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := executeAgainst(t, server, testRetryOptions())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsRateLimit)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, 5, apiErr.RetryAfter)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "429 is handled by the rate-limit gate, not by retrying here")
}

func TestHTTPClient_RateLimitDefaultsRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := executeAgainst(t, server, testRetryOptions())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, DefaultRetryAfterSeconds, apiErr.RetryAfter)
}

func TestHTTPClient_TransportFailureBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(testRetryOptions(), nil, nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Execute(req)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 30, parseRetryAfter("30"))
	assert.Equal(t, DefaultRetryAfterSeconds, parseRetryAfter(""))
	assert.Equal(t, DefaultRetryAfterSeconds, parseRetryAfter("soon"))
	assert.Equal(t, DefaultRetryAfterSeconds, parseRetryAfter("-1"))
}
