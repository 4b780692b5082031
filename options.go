package amigo

import (
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// clientConfig holds configuration for the client.
type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string

	// Retry configuration
	maxAttempts                int
	retryBaseDelay             time.Duration
	retryMaxDelay              time.Duration
	retryOn                    []int
	retryNonIdempotentTimeouts bool
}

// Option configures the client.
type Option func(*clientConfig)

// WithHTTPClient sets a custom HTTP client. When set, WithTimeout is
// ignored and the supplied client's timeout applies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 60 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithMaxAttempts sets the total number of attempts per request,
// including the first. Default: 3.
func WithMaxAttempts(n int) Option {
	return func(c *clientConfig) {
		c.maxAttempts = n
	}
}

// WithRetryBaseDelay sets the base delay for exponential backoff.
// Default: 1 second.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.retryBaseDelay = d
	}
}

// WithRetryMaxDelay sets the ceiling for any single backoff delay,
// including delays requested by a Retry-After header.
// Default: 30 seconds.
func WithRetryMaxDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.retryMaxDelay = d
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithNonIdempotentTimeoutRetry enables retrying POST and PATCH
// requests that failed with a network timeout. Off by default because
// the server may have applied the request before the timeout fired.
func WithNonIdempotentTimeoutRetry() Option {
	return func(c *clientConfig) {
		c.retryNonIdempotentTimeouts = true
	}
}
