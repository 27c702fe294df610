package amos

import (
	"context"
	"time"
)

// Export internal hooks for testing.
// This file is only compiled during tests (suffix _test.go).

// WithSleep overrides the backoff sleep function so tests can record the
// delays the engine asks for instead of waiting them out.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithRetryAfterUnit compresses the Retry-After second into a shorter unit.
func WithRetryAfterUnit(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryAfterUnit = d
		}
	}
}

// KindForStatus exports kindForStatus for testing.
var KindForStatus = kindForStatus

// RetryAfterSeconds exports retryAfterSeconds for testing.
var RetryAfterSeconds = retryAfterSeconds

// ErrorFromBody exports errorFromBody for testing.
var ErrorFromBody = errorFromBody

// DecodeScoreResponse exports decodeScoreResponse for testing.
var DecodeScoreResponse = decodeScoreResponse

// DecodeHealthResponse exports decodeHealthResponse for testing.
var DecodeHealthResponse = decodeHealthResponse

// ParseBody exports parseBody for testing.
// Wraps to hide the unexported rawResponse type.
func ParseBody(status int, body []byte) (map[string]any, bool) {
	return parseBody(&rawResponse{status: status, body: body})
}

// ClientBaseURL exports the resolved base URL for testing.
func ClientBaseURL(c *Client) string { return c.baseURL }

// ClientMaxRetries exports the resolved retry budget for testing.
func ClientMaxRetries(c *Client) int { return c.maxRetries }

// ClientTimeout exports the underlying HTTP client timeout for testing.
func ClientTimeout(c *Client) time.Duration { return c.httpClient.Timeout }

// ClientUserAgent exports the resolved User-Agent for testing.
func ClientUserAgent(c *Client) string { return c.userAgent }
