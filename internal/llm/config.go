// Package llm wraps the hosted text-generation model behind a small client interface.
// Callers pick a model tier; the config maps tiers to concrete model names.
package llm

import "fmt"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for cheap, short completions
	TierLite ModelTier = "lite"
	// TierStandard is the default for every recruiting operation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or nuanced generations
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one wired today.
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application.
// A nil Temperature leaves the model's own default in place.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature *float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier.
// Unknown tiers fall back to standard, then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// ParseTier converts a flag or config value into a ModelTier.
// An empty string means TierStandard.
func ParseTier(s string) (ModelTier, error) {
	switch ModelTier(s) {
	case "":
		return TierStandard, nil
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), nil
	default:
		return "", fmt.Errorf("unknown model tier %q (want lite, standard or advanced)", s)
	}
}
