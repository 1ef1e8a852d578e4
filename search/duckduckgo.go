package search

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/altgrove/searchgate/errors"
)

const defaultDuckDuckGoBaseURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider searches using DuckDuckGo's HTML lite endpoint. It needs
// no API key, which makes it the fallback when no provider is configured.
type DuckDuckGoProvider struct {
	baseURL    string
	httpClient *http.Client
}

// DuckDuckGoConfig holds configuration for the DuckDuckGo provider.
type DuckDuckGoConfig struct {
	BaseURL    string // Optional custom endpoint, for testing
	HTTPClient *http.Client
}

// NewDuckDuckGoProvider creates a keyless DuckDuckGo provider.
func NewDuckDuckGoProvider(cfg DuckDuckGoConfig) *DuckDuckGoProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDuckDuckGoBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DuckDuckGoProvider{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Name implements Provider.
func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// Search implements Provider.
func (p *DuckDuckGoProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()

	params := url.Values{}
	params.Set("q", q.Text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "building duckduckgo request")
	}
	// Mimic a simple text browser
	req.Header.Set("User-Agent", "Lynx/2.8.9rel.1 libwww-FM/2.14")
	req.Header.Set("Accept", "text/html")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(p.Name(), resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(p.Name(), err)
	}

	return parseDuckDuckGoHTML(string(body), q.Count), nil
}

// Result links: <a rel="nofollow" class="result__a" href="...">Title</a>
// Snippets: <a class="result__snippet" href="...">Snippet text</a>
var (
	ddgLinkRe    = regexp.MustCompile(`<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>([^<]+)</a>`)
	ddgSnippetRe = regexp.MustCompile(`<a[^>]+class="result__snippet"[^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</a>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// parseDuckDuckGoHTML extracts search results from the HTML lite response.
func parseDuckDuckGoHTML(html string, count int) []Result {
	var results []Result

	// Fetch extra matches in case some are filtered out below.
	links := ddgLinkRe.FindAllStringSubmatch(html, count*2)
	snippets := ddgSnippetRe.FindAllStringSubmatch(html, count*2)

	for i := 0; i < len(links) && len(results) < count; i++ {
		resultURL := links[i][1]
		title := strings.TrimSpace(links[i][2])

		// DuckDuckGo wraps URLs in a redirect - extract the actual URL.
		if strings.Contains(resultURL, "uddg=") {
			if parts := strings.Split(resultURL, "uddg="); len(parts) > 1 {
				if decoded, err := url.QueryUnescape(parts[1]); err == nil {
					if idx := strings.Index(decoded, "&"); idx != -1 {
						decoded = decoded[:idx]
					}
					resultURL = decoded
				}
			}
		}

		if !strings.HasPrefix(resultURL, "http") {
			continue
		}

		snippet := ""
		if i < len(snippets) {
			snippet = stripHTMLTags(snippets[i][1])
		}

		results = append(results, Result{
			Title:   decodeHTMLEntities(title),
			URL:     resultURL,
			Snippet: decodeHTMLEntities(snippet),
		})
	}

	return results
}

// stripHTMLTags removes HTML tags from a string.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// decodeHTMLEntities decodes common HTML entities.
func decodeHTMLEntities(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return s
}
