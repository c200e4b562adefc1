package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for an endpoint tier.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Unlimited reports whether requests to the endpoint are never limited.
func (e *EndpointConfig) Unlimited() bool {
	return e.Limit <= 0 || e.Window <= 0
}

// NewConfig builds a Config with the default endpoint tiers.
func NewConfig(enabled bool, defaultLimit int, defaultWindow, cleanupInterval time.Duration, whitelist, blacklist []string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		IdleTimeout:     time.Hour,
		Whitelist:       ipSet(whitelist),
		Blacklist:       ipSet(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 0: operational endpoints (unlimited)
		{Path: "/health", Method: "GET"},
		{Path: "/api/health", Method: "GET"},
		{Path: "/metrics", Method: "GET"},

		// Tier 1: resume analysis (file upload + extraction)
		{Path: "/api/analyze-resume", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Tier 2: credential endpoints
		{Path: "/api/users/register", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/users/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/employers/register", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/employers/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 3: write operations
		{Path: "/api/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/jobs/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/jobs/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/users/profile", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/employers/profile", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 4: reads use the default limit
	}
}

func ipSet(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range list {
		for _, part := range strings.Split(ip, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result[part] = true
			}
		}
	}
	return result
}
