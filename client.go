package amigo

import (
	"sync"

	"github.com/amigo-ai/client-go/internal/api"
)

// Client is the main Amigo client. It is safe for concurrent use:
// methods may be called from any number of goroutines, and the
// underlying bearer token is shared and refreshed across all of them.
type Client struct {
	cfg       Config
	apiClient *api.Client

	mu     sync.RWMutex
	closed bool

	// Resource groups. Each wraps the shared transport.
	Conversations *ConversationResource
	Organization  *OrganizationResource
	Roles         *RoleResource
	Services      *ServiceResource
	Users         *UserResource
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg Config, cc *clientConfig) (*api.Client, error) {
	retry := api.DefaultRetryConfig()
	if cc.maxAttempts > 0 {
		retry.MaxAttempts = cc.maxAttempts
	}
	if cc.retryBaseDelay > 0 {
		retry.BaseDelay = cc.retryBaseDelay
	}
	if cc.retryMaxDelay > 0 {
		retry.MaxDelay = cc.retryMaxDelay
	}
	if len(cc.retryOn) > 0 {
		statuses := make(map[int]bool, len(cc.retryOn))
		for _, code := range cc.retryOn {
			statuses[code] = true
		}
		retry.RetryableOn = func(status int) bool { return statuses[status] }
	}
	retry.RetryNonIdempotentTimeouts = cc.retryNonIdempotentTimeouts

	apiOpts := []api.Option{
		api.WithRetryConfig(retry),
	}
	if cc.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cc.timeout))
	}
	if cc.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cc.userAgent))
	}

	apiClient, err := api.New(api.Credentials{
		APIKey:         cfg.APIKey,
		APIKeyID:       cfg.APIKeyID,
		UserID:         cfg.UserID,
		OrganizationID: cfg.OrganizationID,
		BaseURL:        cfg.BaseURL,
	}, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cc.httpClient != nil {
		apiClient.SetHTTPClient(cc.httpClient)
	}

	return apiClient, nil
}

// New creates a new Amigo client with the given configuration.
// No network traffic happens here; the first API call signs in lazily.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cc := &clientConfig{
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cc)
	}

	apiClient, err := buildAPIClient(cfg, cc)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		apiClient: apiClient,
	}
	c.Conversations = &ConversationResource{client: c}
	c.Organization = &OrganizationResource{client: c}
	c.Roles = &RoleResource{client: c}
	c.Services = &ServiceResource{client: c}
	c.Users = &UserResource{client: c}

	return c, nil
}

// NewFromEnv creates a client from the AMIGO_* environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	return New(ConfigFromEnv(), opts...)
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Config returns the configuration the client was created with.
func (c *Client) Config() Config {
	return c.cfg
}

// InvalidateToken discards the cached bearer token. The next request
// signs in again. Useful when credentials are rotated out of band.
func (c *Client) InvalidateToken() {
	c.apiClient.InvalidateToken()
}

// Close closes the client and releases idle connections. In-flight
// requests are not interrupted; subsequent calls return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.apiClient.Close()
	return nil
}
