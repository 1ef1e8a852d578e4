package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/altgrove/searchgate/errors"
)

const defaultTavilyBaseURL = "https://api.tavily.com/search"

// TavilyProvider searches using the Tavily API.
type TavilyProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// TavilyConfig holds configuration for the Tavily provider.
type TavilyConfig struct {
	APIKey     string
	BaseURL    string // Optional custom endpoint, for testing
	HTTPClient *http.Client
}

// NewTavilyProvider creates a Tavily provider.
func NewTavilyProvider(cfg TavilyConfig) (*TavilyProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "api_key is required for tavily",
			errors.WithProvider("tavily"))
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTavilyBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TavilyProvider{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Name implements Provider.
func (p *TavilyProvider) Name() string { return "tavily" }

// Search implements Provider.
func (p *TavilyProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()

	reqBody := map[string]interface{}{
		"api_key":     p.apiKey,
		"query":       q.Text,
		"max_results": q.Count,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "building tavily request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(p.Name(), resp.StatusCode, body)
	}

	var tavilyResp struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tavilyResp); err != nil {
		return nil, classifyDecode(p.Name(), err)
	}

	results := make([]Result, 0, len(tavilyResp.Results))
	for _, r := range tavilyResp.Results {
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}
	return results, nil
}
