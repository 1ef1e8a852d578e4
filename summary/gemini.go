package summary

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/altgrove/searchgate/errors"
)

// Gemini is a completion backend using the official Google Gemini SDK.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// GeminiConfig holds configuration for the Gemini backend.
type GeminiConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// NewGemini creates a Gemini completion backend.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "api_key is required for gemini")
	}
	if cfg.Model == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "model is required for gemini")
	}
	if cfg.MaxTokens <= 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "max_tokens is required for gemini")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client", errors.WithProvider("gemini"))
	}

	model := client.GenerativeModel(cfg.Model)
	maxTokens := int32(cfg.MaxTokens)
	model.MaxOutputTokens = &maxTokens

	return &Gemini{client: client, model: model}, nil
}

// Name implements Provider.
func (g *Gemini) Name() string { return "gemini" }

// Complete implements Provider.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "gemini request failed", errors.WithProvider("gemini"))
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	if text == "" {
		return "", errors.New(errors.CodeUpstream, "gemini returned no text", errors.WithProvider("gemini"))
	}
	return text, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
