package search

import (
	"context"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/altgrove/searchgate/errors"
)

// GoogleProvider searches using Google Programmable Search.
type GoogleProvider struct {
	service  *customsearch.Service
	engineID string
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey   string
	EngineID string // Programmable Search Engine ID (cx)

	// Options are extra client options, for testing (e.g. option.WithEndpoint).
	Options []option.ClientOption
}

// NewGoogleProvider creates a Google Programmable Search provider.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "api_key is required for google",
			errors.WithProvider("google"))
	}
	if cfg.EngineID == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "engine_id is required for google",
			errors.WithProvider("google"))
	}

	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfig,
			"creating google search service", errors.WithProvider("google"))
	}

	return &GoogleProvider{
		service:  service,
		engineID: cfg.EngineID,
	}, nil
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Search implements Provider.
func (p *GoogleProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()

	resp, err := p.service.Cse.List().
		Cx(p.engineID).
		Q(q.Text).
		Num(int64(q.Count)).
		Context(ctx).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok {
			return nil, classifyStatus(p.Name(), apiErr.Code, []byte(apiErr.Body))
		}
		return nil, classifyTransport(p.Name(), err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
