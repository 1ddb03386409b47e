package coingecko

import (
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coindash/market-data/config"
	"golang.org/x/time/rate"
)

// StatusHandler is notified about request outcomes, used to feed metrics
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	// MaxAttempts is the total number of attempts, including the first
	MaxAttempts int
	// BaseBackoff is the delay before the first retry; doubles per attempt
	BaseBackoff time.Duration
	// MaxBackoff caps the retry delay
	MaxBackoff        time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration
	RequestTimeout    time.Duration
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return retryOptionsFrom(config.GetDefaultClientConfig())
}

// RetryOptionsFromConfig builds retry options from the client config section
func RetryOptionsFromConfig(cfg config.ClientConfig) RetryOptions {
	opts := retryOptionsFrom(cfg)
	defaults := DefaultRetryOptions()
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaults.BaseBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaults.MaxBackoff
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaults.RequestTimeout
	}
	if opts.ConnectionTimeout <= 0 {
		opts.ConnectionTimeout = defaults.ConnectionTimeout
	}
	return opts
}

func retryOptionsFrom(cfg config.ClientConfig) RetryOptions {
	return RetryOptions{
		MaxAttempts:       cfg.MaxAttempts,
		BaseBackoff:       cfg.BaseBackoff,
		MaxBackoff:        cfg.MaxBackoff,
		LogPrefix:         "CoinGecko",
		ConnectionTimeout: cfg.ConnectionTimeout,
		RequestTimeout:    cfg.RequestTimeout,
	}
}

// HTTPClient executes CoinGecko requests with bounded exponential retry.
// Transient failures (transport errors, 5xx) are retried with a delay of
// min(BaseBackoff * 2^attempt, MaxBackoff); 4xx responses are surfaced
// immediately since client errors are not transient. A 429 is also not
// retried here: the orchestration layer owns the rate-limit countdown.
// Every failure leaves Execute as *APIError.
type HTTPClient struct {
	client        *http.Client
	opts          RetryOptions
	statusHandler StatusHandler
	limiter       *rate.Limiter
}

// NewHTTPClient creates a new retrying HTTP client. handler and limiter
// may be nil.
func NewHTTPClient(opts RetryOptions, handler StatusHandler, limiter *rate.Limiter) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClient{
		client:        client,
		opts:          opts,
		statusHandler: handler,
		limiter:       limiter,
	}
}

// Execute runs the request, retrying transient failures, and returns the
// response body on success
func (c *HTTPClient) Execute(req *http.Request) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.opts.BaseBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = c.opts.MaxBackoff
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastErr *APIError

	for attempt := 0; attempt < c.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.opts.LogPrefix, attempt, c.opts.MaxAttempts-1, lastErr)

			if c.statusHandler != nil {
				c.statusHandler.OnRetry()
			}

			wait := bo.NextBackOff()
			select {
			case <-req.Context().Done():
				return nil, newTransportError(req.Context().Err())
			case <-time.After(wait):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(req.Context()); err != nil {
				c.onRequest("error")
				return nil, newTransportError(err)
			}
		}

		requestStart := time.Now()
		resp, err := c.client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			lastErr = newTransportError(err)
			c.onRequest("error")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = newTransportError(readErr)
			c.onRequest("error")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := newStatusError(resp, body)

			if apiErr.IsRateLimit {
				c.onRequest("rate_limited")
				log.Printf("%s: Rate limit hit, retry after %d seconds",
					c.opts.LogPrefix, apiErr.RetryAfter)
			} else {
				c.onRequest("error")
			}

			if apiErr.IsClientError() {
				return nil, apiErr
			}

			lastErr = apiErr
			continue
		}

		c.onRequest("success")
		log.Printf("%s: Request completed in %.2fs", c.opts.LogPrefix, requestDuration.Seconds())
		return body, nil
	}

	if lastErr == nil {
		lastErr = newTransportError(nil)
	}
	return nil, lastErr
}

func (c *HTTPClient) onRequest(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}
