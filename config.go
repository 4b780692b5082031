package amigo

import (
	"fmt"
	"os"
	"strings"
)

// DefaultBaseURL is the production Amigo API endpoint.
const DefaultBaseURL = "https://api.amigo.ai"

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey         = "AMIGO_API_KEY"
	EnvAPIKeyID       = "AMIGO_API_KEY_ID"
	EnvUserID         = "AMIGO_USER_ID"
	EnvOrganizationID = "AMIGO_ORGANIZATION_ID"
	EnvBaseURL        = "AMIGO_BASE_URL"
)

// Config holds the credentials and endpoint for an Amigo client.
// Immutable once passed to New.
type Config struct {
	// APIKey is the long-lived API key exchanged for bearer tokens.
	APIKey string
	// APIKeyID identifies the API key.
	APIKeyID string
	// UserID is the user the key was issued for.
	UserID string
	// OrganizationID scopes every API path.
	OrganizationID string
	// BaseURL defaults to DefaultBaseURL when empty.
	BaseURL string
}

// ConfigFromEnv builds a Config from the AMIGO_* environment variables.
// Missing values are reported by New, not here, so callers can overlay
// explicit fields on top of a partial environment.
func ConfigFromEnv() Config {
	return Config{
		APIKey:         os.Getenv(EnvAPIKey),
		APIKeyID:       os.Getenv(EnvAPIKeyID),
		UserID:         os.Getenv(EnvUserID),
		OrganizationID: os.Getenv(EnvOrganizationID),
		BaseURL:        os.Getenv(EnvBaseURL),
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

func (c Config) validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "APIKey ("+EnvAPIKey+")")
	}
	if c.APIKeyID == "" {
		missing = append(missing, "APIKeyID ("+EnvAPIKeyID+")")
	}
	if c.UserID == "" {
		missing = append(missing, "UserID ("+EnvUserID+")")
	}
	if c.OrganizationID == "" {
		missing = append(missing, "OrganizationID ("+EnvOrganizationID+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
