// Package api provides the HTTP transport for communicating with the
// Amigo API. It handles bearer-token acquisition and refresh,
// request/response serialization, automatic retry with method-aware
// backoff, and ndjson line streaming.
//
// # Authentication
//
// Requests carry a short-lived bearer token obtained by exchanging the
// long-lived API key at the sign-in endpoint. The token is refreshed
// transparently five minutes before expiry and immediately after an
// observed 401; the 401 retry happens once per call and does not
// consume a retry attempt.
//
// # Retry Behavior
//
// Failed requests are retried with full-jitter exponential backoff. By
// default, 408 and 5xx responses are retried only for idempotent
// methods (GET, HEAD, PUT, DELETE, OPTIONS); 429 responses are retried
// for any method, but only when the server supplies a Retry-After
// hint, which then takes precedence over the computed backoff.
// Network-level timeouts with no response are retried only for
// idempotent methods unless [RetryConfig.RetryNonIdempotentTimeouts]
// is set.
//
// # Streaming
//
// [Client.StreamLines] opens an ndjson response stream. The status is
// checked before any body bytes are consumed, setup failures follow
// the same retry policy as plain requests, and once the first line has
// been delivered the call is forward-only.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Concurrent calls share
// the connection pool and the current token; token refresh is
// single-flight, so concurrent callers wait for and reuse one exchange.
package api
