package supabase

import (
	"errors"
	"net/http"
)

// Config holds the connection parameters of a hosted PostgREST endpoint
type Config struct {
	// URL is the project endpoint, e.g. https://xyz.supabase.co
	URL string
	// APIKey is the public (anon) key sent as both apikey and bearer token
	APIKey string
	// Schema selects a non-default schema via Accept-Profile/Content-Profile (optional)
	Schema string
	// HTTPClient overrides the transport (optional)
	HTTPClient *http.Client
}

// Validate reports a missing connection parameter
func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("supabase URL is required")
	}
	if c.APIKey == "" {
		return errors.New("supabase API key is required")
	}
	return nil
}
