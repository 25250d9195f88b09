package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/careerview/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the service configuration.
func FromConfig(c config.RateLimitConfig) *Config {
	if !c.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    c.DefaultRPM,
		DefaultBurst:    c.DefaultBurst,
		DefaultWindow:   time.Minute,
		CleanupInterval: c.CleanupInterval,
		EndpointConfigs: EndpointConfigs(c),
	}
}

// EndpointConfigs returns the per-endpoint tiers.
func EndpointConfigs(c config.RateLimitConfig) []EndpointConfig {
	upload := func(method, path string) EndpointConfig {
		return EndpointConfig{Path: path, Method: method, Limit: c.UploadRPM, Window: time.Minute, Burst: c.UploadBurst}
	}
	model := func(method, path string) EndpointConfig {
		return EndpointConfig{Path: path, Method: method, Limit: c.LLMRPM, Window: time.Minute, Burst: c.LLMBurst}
	}
	return []EndpointConfig{
		// Tier 1: uploads parse whole documents
		upload(http.MethodPost, "/upload-resume"),

		// Tier 2: anything that may call the model
		model(http.MethodGet, "/career-matches/"),
		model(http.MethodGet, "/career-path/"),
		model(http.MethodPost, "/personas/create-future-self/"),
		model(http.MethodPost, "/chat"),
		model(http.MethodPost, "/chat-quick"),
		model(http.MethodPost, "/voice-chat/"),

		// Tier 3: reads and admin writes use the default limit
		// Tier 4: health check (unlimited) - handled by special case in matcher
	}
}
