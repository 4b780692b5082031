package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Credentials holds the long-lived credentials and endpoint used to
// construct a transport. Immutable once constructed.
type Credentials struct {
	APIKey         string
	APIKeyID       string
	UserID         string
	OrganizationID string
	BaseURL        string
}

func (c Credentials) validate() error {
	switch {
	case c.APIKey == "":
		return fmt.Errorf("API key is required")
	case c.APIKeyID == "":
		return fmt.Errorf("API key ID is required")
	case c.UserID == "":
		return fmt.Errorf("user ID is required")
	case c.OrganizationID == "":
		return fmt.Errorf("organization ID is required")
	case c.BaseURL == "":
		return fmt.Errorf("base URL is required")
	}
	return nil
}

// Client is the HTTP transport for the Amigo API.
type Client struct {
	baseURL    string
	orgID      string
	httpClient *http.Client
	tokens     *tokenSource
	retry      *RetryConfig
	userAgent  string

	// wait is injectable for tests; defaults to RetryConfig.Wait.
	wait func(ctx context.Context, d time.Duration) error
}

// Option configures the API client.
type Option func(*Client)

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig replaces the retry configuration.
func WithRetryConfig(cfg *RetryConfig) Option {
	return func(c *Client) {
		if cfg != nil {
			c.retry = cfg
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new API transport.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: creds.BaseURL,
		orgID:   creds.OrganizationID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retry:     DefaultRetryConfig(),
		userAgent: "amigo-client-go",
	}

	for _, opt := range opts {
		opt(c)
	}

	c.tokens = newTokenSource(creds, c.httpClient)
	c.wait = c.retry.Wait

	return c, nil
}

// SetHTTPClient sets a custom HTTP client. The token exchange shares it.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
	c.tokens.httpClient = client
}

// SetWaitFunc replaces the inter-retry wait. Used by tests to count
// and skip real sleeps.
func (c *Client) SetWaitFunc(fn func(ctx context.Context, d time.Duration) error) {
	c.wait = fn
}

// InvalidateToken discards the cached bearer token, forcing the next
// call to re-authenticate.
func (c *Client) InvalidateToken() {
	c.tokens.Invalidate()
}

// OrgPath returns an API path under the client's organization, e.g.
// OrgPath("conversation/") -> "/v1/{org}/conversation/".
func (c *Client) OrgPath(suffix string) string {
	return "/v1/" + url.PathEscape(c.orgID) + "/" + suffix
}

// Close releases idle connections held by the pool.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Do executes a request/response call and decodes the 2xx body into
// result (which may be nil to discard it). Non-2xx responses are
// returned as typed errors; a decode failure on a 2xx response is a
// *DecodeError, never conflated with a server-reported error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	resp, err := c.send(ctx, method, path, query, body, "application/json", true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// send runs the retry loop shared by Do and StreamLines. On success it
// returns an open 2xx response; the caller owns the body.
//
// parseErrorBody controls error construction for non-2xx responses:
// plain requests read the body for a structured message, streaming
// calls must not consume any body bytes before the status check.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string, parseErrorBody bool) (*http.Response, error) {
	method = normalizeMethod(method)

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("marshal request body: %w", err)}
		}
		payload = data
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	for attempt := 1; ; attempt++ {
		resp, err := c.attempt(ctx, method, u, payload, accept)
		if err != nil {
			// No response received. Retry only when the method is safe
			// to replay and the caller's context is still live.
			if attempt < c.retry.MaxAttempts && c.retry.RetryableTimeout(method) && !isContextErr(err) && !isAuthOrDecodeErr(err) {
				if werr := c.wait(ctx, c.retry.Delay(attempt, "")); werr != nil {
					return nil, werr
				}
				continue
			}
			if isAuthOrDecodeErr(err) {
				return nil, err
			}
			return nil, &NetworkError{Err: err, URL: u, Attempt: attempt}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if attempt < c.retry.MaxAttempts && c.retry.IsRetryable(method, resp.StatusCode, resp.Header) {
			retryAfter := resp.Header.Get("Retry-After")
			drainClose(resp)
			if werr := c.wait(ctx, c.retry.Delay(attempt, retryAfter)); werr != nil {
				return nil, werr
			}
			continue
		}

		if parseErrorBody {
			return nil, parseErrorResponse(resp)
		}
		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Kind:       KindForStatus(resp.StatusCode),
			Message:    fmt.Sprintf("HTTP %d error", resp.StatusCode),
		}
	}
}

// attempt performs one round trip including the transparent 401
// refresh-and-retry, which happens at most once and does not consume a
// retry attempt.
func (c *Client) attempt(ctx context.Context, method, u string, payload []byte, accept string) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(ctx, method, u, payload, token, accept)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drainClose(resp)
		c.tokens.Invalidate()
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.roundTrip(ctx, method, u, payload, token, accept)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, method, u string, payload []byte, token, accept string) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// parseErrorResponse maps a non-2xx response to an *APIError, pulling a
// structured message and field errors out of the body when present.
func parseErrorResponse(resp *http.Response) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindForStatus(resp.StatusCode),
		RawBody:    raw,
	}

	var errResp struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Detail  string            `json:"detail"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &errResp); err == nil {
		switch {
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		case errResp.Detail != "":
			apiErr.Message = errResp.Detail
		}
		apiErr.FieldErrors = errResp.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = string(bytes.TrimSpace(raw))
	}

	// A 400 carrying field errors is a validation failure.
	if apiErr.Kind == KindBadRequest && len(apiErr.FieldErrors) > 0 {
		apiErr.Kind = KindValidation
	}

	return apiErr
}

func normalizeMethod(method string) string {
	return strings.ToUpper(method)
}

func drainClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isAuthOrDecodeErr(err error) bool {
	var authErr *AuthError
	var decErr *DecodeError
	return errors.As(err, &authErr) || errors.As(err, &decErr)
}
