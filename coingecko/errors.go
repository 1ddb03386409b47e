package coingecko

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// DefaultRetryAfterSeconds is assumed when a 429 response carries no
// parseable Retry-After header
const DefaultRetryAfterSeconds = 60

// APIError is the single failure shape that leaves this package. Every
// transport error, non-200 status and malformed payload is normalized
// into it; no lower-level error type crosses the client boundary.
type APIError struct {
	// Message is a human-readable description
	Message string `json:"message"`

	// Status is the HTTP status code, 0 when the failure happened
	// below HTTP (dial error, timeout, bad payload)
	Status int `json:"status,omitempty"`

	// IsRateLimit marks an upstream 429 rejection
	IsRateLimit bool `json:"isRateLimit,omitempty"`

	// RetryAfter is the advisory wait in seconds for rate-limited
	// requests
	RetryAfter int `json:"retryAfter,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("coingecko: %s (status %d)", e.Message, e.Status)
	}
	return "coingecko: " + e.Message
}

// IsClientError reports whether the failure carries a 4xx status.
// Client errors are not transient and must not be retried.
func (e *APIError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// AsAPIError unwraps err into an *APIError if it carries one
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newTransportError wraps a failure that happened before any HTTP
// status was received
func newTransportError(err error) *APIError {
	msg := "An unknown error occurred"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Message: msg}
}

// newStatusError builds an APIError from a non-200 response. For 429
// the Retry-After header is read as an integer number of seconds,
// defaulting to DefaultRetryAfterSeconds when absent or unparseable.
func newStatusError(resp *http.Response, body []byte) *APIError {
	if resp.StatusCode == http.StatusTooManyRequests {
		return &APIError{
			Message:     "Too many requests. Please wait before trying again.",
			Status:      resp.StatusCode,
			IsRateLimit: true,
			RetryAfter:  parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return &APIError{
		Message: messageFromBody(body, resp.StatusCode),
		Status:  resp.StatusCode,
	}
}

func parseRetryAfter(header string) int {
	if header == "" {
		return DefaultRetryAfterSeconds
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return DefaultRetryAfterSeconds
	}
	return seconds
}

// messageFromBody extracts an upstream error message when the body is
// a json object with an "error" or "message" field
func messageFromBody(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("API request failed with status %d", status)
}
