package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/config"
	"github.com/jonathan/recruiter-copilot/internal/gateway"
	"github.com/jonathan/recruiter-copilot/internal/ingestion"
	"github.com/jonathan/recruiter-copilot/internal/llm"
	"github.com/spf13/pflag"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	apiKey     string
	model      string
	tier       string
	market     string
	currency   string
	verbose    bool
}

func (o *globalOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	fs.StringVar(&o.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	fs.StringVar(&o.model, "model", "", "Model name for the selected tier (default gemini-2.5-flash)")
	fs.StringVar(&o.tier, "tier", "", "Model tier: lite, standard or advanced (default standard)")
	fs.StringVar(&o.market, "market", "", "Labor market for salary estimates (default Brazil)")
	fs.StringVar(&o.currency, "currency", "", "Currency code for salary estimates (default BRL)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolve merges the config file, explicitly set flags, the environment and defaults,
// in that order of precedence from lowest to highest: defaults, env, file, flags.
func (o *globalOptions) resolve(fs *pflag.FlagSet) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	if fs.Changed("api-key") {
		cfg.APIKey = o.apiKey
	}
	if fs.Changed("model") {
		cfg.Model = o.model
	}
	if fs.Changed("market") {
		cfg.Market = o.market
	}
	if fs.Changed("currency") {
		cfg.Currency = o.currency
	}
	if fs.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newGateway builds the model client and gateway for cfg. Callers must close the client.
func newGateway(ctx context.Context, cfg config.Config, tierName string) (*gateway.Gateway, llm.Client, error) {
	tier, err := llm.ParseTier(tierName)
	if err != nil {
		return nil, nil, err
	}

	llmConfig := llm.DefaultConfig()
	// The default model names the standard tier only; an explicit model names the selected tier.
	if cfg.Model != config.DefaultModel || tier == llm.TierStandard {
		llmConfig = llmConfig.WithModel(tier, cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Verbose {
		log.Printf("[recruiter] model=%s market=%s currency=%s", client.GetModel(tier), cfg.Market, cfg.Currency)
	}

	gw := gateway.New(client, gateway.Options{
		Market:   cfg.Market,
		Currency: cfg.Currency,
		Tier:     tier,
		Logger:   log.Default(),
	})
	return gw, client, nil
}

// textInput returns inline text, or the extracted text of path when inline is empty.
func textInput(ctx context.Context, inline, path string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if path == "" {
		return "", nil
	}
	return ingestion.ExtractFile(ctx, path)
}

// emitJSON writes v as indented JSON to out, and also to path when set.
func emitJSON(out io.Writer, path string, v any, toStdout bool) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	if toStdout {
		_, _ = fmt.Fprintf(out, "%s\n", data)
	}
	return nil
}
