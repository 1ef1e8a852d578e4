package summary

import (
	"context"

	"github.com/altgrove/searchgate/errors"
)

// BackendConfig selects and configures a completion backend.
type BackendConfig struct {
	Provider  string // "anthropic", "openai", or "gemini"
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// NewProvider creates a completion backend from configuration.
func NewProvider(ctx context.Context, cfg BackendConfig) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropic(AnthropicConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	case "openai":
		return NewOpenAI(OpenAIConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	case "gemini":
		return NewGemini(ctx, GeminiConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown summary provider %q", cfg.Provider)
	}
}
