package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// An empty key disables authentication (local development only).
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, including image uploads.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 8 << 20
	}
	return c.BodyLimitMB << 20
}
