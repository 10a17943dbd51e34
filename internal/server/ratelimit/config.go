package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // Exact request path
	Method string        // HTTP method
	Limit  int           // Requests allowed per window
	Window time.Duration // Refill window
	Burst  int           // Requests allowed at once (defaults to Limit)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment variables.
// Limiting is off unless RATE_LIMIT_ENABLED is true.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", false) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_GENERATION_LIMIT", 30)),
	}
}

// DefaultEndpointConfigs limits every route that calls the model.
// Uploads also parse a document, so they get a third of the budget.
func DefaultEndpointConfigs(perMinute int) []EndpointConfig {
	uploads := max(perMinute/3, 1)
	return []EndpointConfig{
		{Path: "/job-posting", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: 5},
		{Path: "/interview-script", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: 5},
		{Path: "/resume-match", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: 5},
		{Path: "/market-analysis", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: 5},
		{Path: "/resume-match/upload", Method: "POST", Limit: uploads, Window: time.Minute, Burst: 2},
	}
}

// MatchEndpoint returns the config for an exact path and method, or nil.
// GET /health always matches an unlimited entry.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
