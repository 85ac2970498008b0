// Package config loads process configuration for the spotify-mcp server.
//
// Configuration is sourced from environment variables, optionally seeded from
// a .env file in the working directory. Flags handled by the cmd package take
// precedence over the values loaded here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by the server.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvRefreshToken = "SPOTIFY_REFRESH_TOKEN"
	EnvAccessToken  = "SPOTIFY_ACCESS_TOKEN"
	EnvServerPort   = "SPOTIFY_MCP_SERVER_PORT"
	EnvRedirectURI  = "SPOTIFY_REDIRECT_URI"
)

// DefaultPort is the HTTP listen port used when SPOTIFY_MCP_SERVER_PORT is unset.
const DefaultPort = 5000

// DefaultRedirectURI is the OAuth callback used by the interactive
// authorization flow when SPOTIFY_REDIRECT_URI is unset. It must match a
// redirect URI registered on the Spotify application.
const DefaultRedirectURI = "http://localhost:5000/oauth/callback"

// Config holds the process configuration sourced at startup.
// Credentials are immutable for the process lifetime.
type Config struct {
	// ClientID and ClientSecret are the Spotify application credentials
	// used for the client-credentials token exchange.
	ClientID     string
	ClientSecret string

	// RefreshToken enables user-scoped endpoints (audio features,
	// recommendations, genre seeds). Optional.
	RefreshToken string

	// AccessToken is a pre-issued user access token, used as a short-lived
	// fallback when no refresh token is configured. Optional.
	AccessToken string

	// Port is the HTTP listen port for the sse and streamable-http transports.
	Port int

	// RedirectURI is the OAuth callback for the interactive authorization
	// flow on the HTTP transports.
	RedirectURI string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win over
// .env entries.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set in the environment.
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		RefreshToken: os.Getenv(EnvRefreshToken),
		AccessToken:  os.Getenv(EnvAccessToken),
		Port:         DefaultPort,
		RedirectURI:  DefaultRedirectURI,
	}

	if uri := os.Getenv(EnvRedirectURI); uri != "" {
		cfg.RedirectURI = uri
	}

	if portStr := os.Getenv(EnvServerPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvServerPort, portStr, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Validate checks that the required credentials are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing required Spotify credentials: set %s and %s", EnvClientID, EnvClientSecret)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid listen port %d", c.Port)
	}
	return nil
}

// HasUserAuth reports whether user-scoped endpoints can be served, either via
// a refresh token or a pre-issued access token.
func (c *Config) HasUserAuth() bool {
	return c.RefreshToken != "" || c.AccessToken != ""
}
