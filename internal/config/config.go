// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults used when neither the config file nor flags provide a value.
const (
	DefaultPort        = 8080
	DefaultModel       = "gemini-2.5-flash"
	DefaultMarket      = "Brazil"
	DefaultCurrency    = "BRL"
	DefaultTone        = "Professional and inspiring"
	APIKeyEnv          = "GEMINI_API_KEY"
	fallbackAPIKeyEnv  = "API_KEY"
	maxCurrencyCodeLen = 3
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Port        int    `json:"port,omitempty"`         // HTTP listen port for serve
	Model       string `json:"model,omitempty"`        // Model used for the standard tier
	Market      string `json:"market,omitempty"`       // Labor market for salary analysis
	Currency    string `json:"currency,omitempty"`     // ISO currency code for salary ranges
	DefaultTone string `json:"default_tone,omitempty"` // Tone used when a job posting request omits one
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        DefaultPort,
		Model:       DefaultModel,
		Market:      DefaultMarket,
		Currency:    DefaultCurrency,
		DefaultTone: DefaultTone,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is not required here; a missing key surfaces on the first model call.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Currency != "" && len(c.Currency) != maxCurrencyCodeLen {
		return fmt.Errorf("config error: 'currency' must be a 3-letter code, got %q", c.Currency)
	}
	if c.Model != "" && strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("config error: 'model' must not be blank")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Currency codes come back upper-cased whichever source set them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Market == "" {
		result.Market = defaults.Market
	}
	if result.Currency == "" {
		result.Currency = defaults.Currency
	}
	result.Currency = strings.ToUpper(strings.TrimSpace(result.Currency))
	if result.DefaultTone == "" {
		result.DefaultTone = defaults.DefaultTone
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the API key from the environment when the file did not set one.
// GEMINI_API_KEY wins over API_KEY.
func (c *Config) ApplyEnv() {
	if c.APIKey != "" {
		return
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.APIKey = key
		return
	}
	c.APIKey = os.Getenv(fallbackAPIKeyEnv)
}
