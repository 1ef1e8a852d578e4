package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/altgrove/searchgate/errors"
)

const defaultBraveBaseURL = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider searches using the Brave Search API.
type BraveProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// BraveConfig holds configuration for the Brave provider.
type BraveConfig struct {
	APIKey     string
	BaseURL    string // Optional custom endpoint, for testing
	HTTPClient *http.Client
}

// NewBraveProvider creates a Brave Search provider.
func NewBraveProvider(cfg BraveConfig) (*BraveProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "api_key is required for brave",
			errors.WithProvider("brave"))
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBraveBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BraveProvider{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Name implements Provider.
func (p *BraveProvider) Name() string { return "brave" }

// Search implements Provider.
func (p *BraveProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("count", fmt.Sprintf("%d", q.Count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "building brave request")
	}
	req.Header.Set("X-Subscription-Token", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(p.Name(), resp.StatusCode, body)
	}

	var braveResp struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&braveResp); err != nil {
		return nil, classifyDecode(p.Name(), err)
	}

	results := make([]Result, 0, len(braveResp.Web.Results))
	for _, r := range braveResp.Web.Results {
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
	}
	return results, nil
}
