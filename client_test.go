package amigo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testOrgID = "test-org"

// newTestClient starts an httptest server with a working sign-in
// endpoint, registers it on the returned mux, and builds a client
// pointed at it.
func newTestClient(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/"+testOrgID+"/user/signin_with_api_key", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id_token":   "test-token",
			"expires_at": time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		APIKey:         "key",
		APIKeyID:       "key-id",
		UserID:         "user-1",
		OrganizationID: testOrgID,
		BaseURL:        srv.URL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, mux
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("New() error = %v, want ErrMissingCredentials", err)
	}

	_, err = New(Config{APIKey: "key", APIKeyID: "key-id", UserID: "user-1"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("New() without org error = %v, want ErrMissingCredentials", err)
	}
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	client, err := New(Config{
		APIKey:         "key",
		APIKeyID:       "key-id",
		UserID:         "user-1",
		OrganizationID: testOrgID,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if got := client.Config().BaseURL; got != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", got, DefaultBaseURL)
	}
}

func TestNew_TrimsBaseURLSlash(t *testing.T) {
	client, err := New(Config{
		APIKey:         "key",
		APIKeyID:       "key-id",
		UserID:         "user-1",
		OrganizationID: testOrgID,
		BaseURL:        "https://api.example.com/",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if got := client.Config().BaseURL; got != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash removed", got)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvAPIKeyID, "env-key-id")
	t.Setenv(EnvUserID, "env-user")
	t.Setenv(EnvOrganizationID, "env-org")
	t.Setenv(EnvBaseURL, "https://staging.example.com")

	client, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	defer client.Close()

	cfg := client.Config()
	if cfg.APIKey != "env-key" || cfg.OrganizationID != "env-org" {
		t.Errorf("config from env = %+v", cfg)
	}
	if cfg.BaseURL != "https://staging.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestClient_Closed(t *testing.T) {
	client, _ := newTestClient(t)

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Close is idempotent.
	if err := client.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if _, err := client.Services.List(ctx); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Services.List after Close = %v, want ErrClientClosed", err)
	}
	if _, err := client.Conversations.Create(ctx, &CreateConversationRequest{ServiceID: "svc"}, nil); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Conversations.Create after Close = %v, want ErrClientClosed", err)
	}
	if err := client.Users.Delete(ctx, "u1"); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Users.Delete after Close = %v, want ErrClientClosed", err)
	}
}

func TestClient_ResourcesShareTransport(t *testing.T) {
	client, mux := newTestClient(t)

	var authHeaders []string
	mux.HandleFunc("/v1/"+testOrgID+"/service/", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(ServiceList{})
	})
	mux.HandleFunc("/v1/"+testOrgID+"/role/", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(RoleList{})
	})

	ctx := context.Background()
	if _, err := client.Services.List(ctx); err != nil {
		t.Fatalf("Services.List() error = %v", err)
	}
	if _, err := client.Roles.List(ctx); err != nil {
		t.Fatalf("Roles.List() error = %v", err)
	}

	if len(authHeaders) != 2 {
		t.Fatalf("requests = %d, want 2", len(authHeaders))
	}
	for _, h := range authHeaders {
		if h != "Bearer test-token" {
			t.Errorf("Authorization = %q, want shared bearer token", h)
		}
	}
}
