package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// tokenSkew is how long before expiry a token is considered stale.
const tokenSkew = 5 * time.Minute

// signInResponse is the body returned by the sign-in exchange endpoint.
type signInResponse struct {
	IDToken   string    `json:"id_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// tokenSource exchanges the long-lived API key for a short-lived bearer
// token and caches it until it is within tokenSkew of expiry.
//
// The mutex is held across the exchange, so concurrent callers wait for
// and reuse the in-flight exchange's result instead of issuing
// duplicate sign-ins.
type tokenSource struct {
	creds      Credentials
	httpClient *http.Client

	mu    sync.Mutex
	token *signInResponse

	now func() time.Time
}

func newTokenSource(creds Credentials, httpClient *http.Client) *tokenSource {
	return &tokenSource{
		creds:      creds,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Token returns the current bearer token, performing the sign-in
// exchange first if no token is held or the held one is stale.
// Any exchange failure (network, non-2xx, malformed body) is reported
// as an *AuthError.
func (t *tokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != nil && t.now().UTC().Before(t.token.ExpiresAt.Add(-tokenSkew)) {
		return t.token.IDToken, nil
	}

	token, err := t.exchange(ctx)
	if err != nil {
		return "", err
	}
	t.token = token
	return token.IDToken, nil
}

// Invalidate discards the held token so the next Token call is forced
// to refresh. Called after observing a 401 from a downstream request.
func (t *tokenSource) Invalidate() {
	t.mu.Lock()
	t.token = nil
	t.mu.Unlock()
}

// exchange performs a single sign-in attempt. It does no retrying of
// its own; the caller's retry policy never applies here.
func (t *tokenSource) exchange(ctx context.Context) (*signInResponse, error) {
	u := t.creds.BaseURL + "/v1/" + url.PathEscape(t.creds.OrganizationID) + "/user/signin_with_api_key"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	req.Header.Set("x-api-key", t.creds.APIKey)
	req.Header.Set("x-api-key-id", t.creds.APIKeyID)
	req.Header.Set("x-user-id", t.creds.UserID)
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &AuthError{
			Err: fmt.Errorf("sign-in exchange returned %d: %s", resp.StatusCode, body),
		}
	}

	var token signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("invalid sign-in response: %w", err)}
	}
	if token.IDToken == "" {
		return nil, &AuthError{Err: fmt.Errorf("sign-in response missing id_token")}
	}
	return &token, nil
}
