package summary

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/altgrove/searchgate/errors"
)

// OpenAI is a completion backend using the official OpenAI SDK.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string // Optional custom endpoint
	Model     string
	MaxTokens int
}

// NewOpenAI creates an OpenAI completion backend.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "api_key is required for openai")
	}
	if cfg.Model == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "model is required for openai")
	}
	if cfg.MaxTokens <= 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "max_tokens is required for openai")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &OpenAI{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "openai" }

// Complete implements Provider.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(o.maxTokens)),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "openai request failed", errors.WithProvider("openai"))
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(errors.CodeUpstream, "openai returned no choices", errors.WithProvider("openai"))
	}
	return resp.Choices[0].Message.Content, nil
}
