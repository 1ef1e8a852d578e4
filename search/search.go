// Package search provides the downstream executors for the proxy: web search
// providers, classification of their failures, and the rate-limited client
// that callers use.
package search

import (
	"context"
	"strings"

	"github.com/altgrove/searchgate/errors"
)

// Result bounds enforced on every query.
const (
	MinResults     = 1
	MaxResults     = 10
	DefaultResults = 5
)

// Query is a single search request.
type Query struct {
	// Text is the search query string.
	Text string `json:"text"`

	// Count is the number of results wanted (1-10, default 5).
	Count int `json:"count"`
}

// normalized returns a copy with Count clamped into the supported range.
func (q Query) normalized() Query {
	if q.Count == 0 {
		q.Count = DefaultResults
	} else if q.Count < MinResults {
		q.Count = MinResults
	} else if q.Count > MaxResults {
		q.Count = MaxResults
	}
	return q
}

// validate rejects queries the providers cannot serve.
func (q Query) validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New(errors.CodeInvalidInput, "query text is required")
	}
	return nil
}

// Result is a single search result.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider performs the actual search API call. Implementations classify
// their failures via the errors package: RATE_LIMITED for quota rejections,
// UPSTREAM for other non-success responses, NETWORK_ERR for transport
// failures.
type Provider interface {
	// Name returns the provider name used in logs and error metadata.
	Name() string

	// Search executes the query and returns up to Count results.
	Search(ctx context.Context, q Query) ([]Result, error)
}
