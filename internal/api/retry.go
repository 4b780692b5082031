package api

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per call, including
	// the first one. The 401 token-refresh retry is not counted.
	MaxAttempts int
	// BaseDelay is the backoff window for the first retry.
	BaseDelay time.Duration
	// MaxDelay caps both the backoff window and server-supplied
	// Retry-After hints.
	MaxDelay time.Duration
	// RetryableOn determines if a status code is eligible for retry at
	// all. Method and Retry-After gating is applied on top of it.
	RetryableOn func(statusCode int) bool
	// IdempotentMethods is the set of methods (upper-case) retried on
	// 408/5xx responses and on network-level timeouts.
	IdempotentMethods map[string]bool
	// RetryNonIdempotentTimeouts also retries non-idempotent methods on
	// network-level timeouts. Off by default: a POST that timed out may
	// still have been applied by the server.
	RetryNonIdempotentTimeouts bool

	// now and randFloat are injectable for deterministic tests.
	now       func() time.Time
	randFloat func() float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		RetryableOn: func(statusCode int) bool {
			switch statusCode {
			case 408, 429, 500, 502, 503, 504:
				return true
			default:
				return false
			}
		},
		IdempotentMethods: map[string]bool{
			http.MethodGet:     true,
			http.MethodHead:    true,
			http.MethodPut:     true,
			http.MethodDelete:  true,
			http.MethodOptions: true,
		},
	}
}

// IsRetryable reports whether a response is eligible for retry.
// 408 and the 5xx set are retryable only for idempotent methods. 429
// is retryable for any method, but only when the server supplied a
// Retry-After hint; without one, retrying would mask a real rate-limit
// policy violation on a non-idempotent call.
func (r *RetryConfig) IsRetryable(method string, statusCode int, header http.Header) bool {
	if !r.RetryableOn(statusCode) {
		return false
	}
	if statusCode == http.StatusTooManyRequests {
		return header.Get("Retry-After") != ""
	}
	return r.IdempotentMethods[strings.ToUpper(method)]
}

// RetryableTimeout reports whether a network-level timeout (no response
// received) is eligible for retry with the given method.
func (r *RetryConfig) RetryableTimeout(method string) bool {
	if r.RetryNonIdempotentTimeouts {
		return true
	}
	return r.IdempotentMethods[strings.ToUpper(method)]
}

// Delay computes the wait before the next attempt. attempt is 1-based.
// A parseable Retry-After hint is clamped into [0, MaxDelay] and used
// as-is; otherwise the delay is a uniformly random value in
// [0, min(MaxDelay, BaseDelay*2^(attempt-1))] (full jitter).
func (r *RetryConfig) Delay(attempt int, retryAfter string) time.Duration {
	if d, ok := r.parseRetryAfter(retryAfter); ok {
		if d < 0 {
			d = 0
		}
		if d > r.MaxDelay {
			d = r.MaxDelay
		}
		return d
	}

	window := float64(r.BaseDelay) * math.Pow(2, float64(attempt-1))
	if window > float64(r.MaxDelay) {
		window = float64(r.MaxDelay)
	}
	rnd := rand.Float64
	if r.randFloat != nil {
		rnd = r.randFloat
	}
	return time.Duration(rnd() * window)
}

// parseRetryAfter parses a Retry-After header value, either a
// non-negative decimal number of seconds or an HTTP-date. A negative
// value parses successfully and is reported as zero; anything
// unparseable falls through to the backoff branch.
func (r *RetryConfig) parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs < 0 {
			return 0, true
		}
		return time.Duration(secs * float64(time.Second)), true
	}

	if at, err := http.ParseTime(value); err == nil {
		now := time.Now
		if r.now != nil {
			now = r.now
		}
		d := at.Sub(now().UTC())
		if d < 0 {
			return 0, true
		}
		return d, true
	}

	return 0, false
}

// Wait sleeps for the computed delay, returning early if the context
// is cancelled.
func (r *RetryConfig) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
