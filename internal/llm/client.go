package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model call succeeded but produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Client is an abstraction over the generative model endpoint
type Client interface {
	// GenerateContent returns free-form text for the prompt
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON returns text constrained to the given response schema.
	// A nil schema only forces a JSON MIME type.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, tier ModelTier) (string, error)
	// GetModel returns the model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
// The API key is attached as-is; a missing key is reported by the endpoint on first use.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates free text using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with %s: %w", c.config.GetModel(tier), err)
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates schema-constrained JSON using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON with %s: %w", c.config.GetModel(tier), err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	applyGenerationConfig(model, c.config)
	return model, nil
}

// applyGenerationConfig copies the optional sampling settings onto model.
func applyGenerationConfig(model *genai.GenerativeModel, config *Config) {
	if config.Temperature != nil {
		model.SetTemperature(*config.Temperature)
	}
}

// extractTextFromResponse joins the text parts of the first candidate.
// Every "nothing came back" shape wraps ErrEmptyResponse.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response: %w", ErrEmptyResponse)
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
