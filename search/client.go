package search

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/altgrove/searchgate/errors"
	"github.com/altgrove/searchgate/logging"
	"github.com/altgrove/searchgate/schedule"
)

// ResultCache stores past query results for reuse. Implemented by the cache
// package.
type ResultCache interface {
	// Lookup returns cached results for an exact query, if present.
	Lookup(query string) ([]Result, bool)
	// Store caches the results of a successful search.
	Store(query string, results []Result) error
}

// Summarizer condenses content into an answer for a question. Implemented by
// the summary package.
type Summarizer interface {
	Summarize(ctx context.Context, content, question string) (string, error)
}

// Client is the proxy facade: it gates every provider call through the
// admission scheduler and surfaces classified failures unchanged. It holds no
// retry logic; a RATE_LIMITED outcome does not alter the scheduler's floor.
type Client struct {
	provider   Provider
	scheduler  *schedule.Scheduler
	cache      ResultCache
	summarizer Summarizer
	logger     *logging.Logger
}

// ClientConfig holds the collaborators for a Client.
type ClientConfig struct {
	// Provider performs the downstream API call (required).
	Provider Provider

	// Scheduler spaces admissions to the provider (required). The client
	// does not own it; multiple clients may share one scheduler when they
	// share one downstream quota.
	Scheduler *schedule.Scheduler

	// Cache short-circuits repeat queries (optional).
	Cache ResultCache

	// Summarizer backs the Answer method (optional).
	Summarizer Summarizer

	// Logger receives search events (optional).
	Logger *logging.Logger
}

// NewClient creates a search client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Provider == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "a search provider is required")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "a scheduler is required")
	}
	return &Client{
		provider:   cfg.Provider,
		scheduler:  cfg.Scheduler,
		cache:      cfg.Cache,
		summarizer: cfg.Summarizer,
		logger:     cfg.Logger,
	}, nil
}

// Provider returns the downstream provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Search runs one rate-limited query. The caller blocks until the scheduler
// dispatches its admission, then the provider is called exactly once. Errors
// come back classified (RATE_LIMITED, UPSTREAM, NETWORK_ERR, ...) and are
// never retried here.
func (c *Client) Search(ctx context.Context, q Query) ([]Result, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	q = q.normalized()

	if c.cache != nil {
		if results, ok := c.cache.Lookup(q.Text); ok {
			if c.logger != nil {
				c.logger.CacheHit(q.Text, len(results))
			}
			if len(results) > q.Count {
				results = results[:q.Count]
			}
			return results, nil
		}
		if c.logger != nil {
			c.logger.CacheMiss(q.Text)
		}
	}

	adm := c.scheduler.Submit()
	if err := adm.Wait(ctx); err != nil {
		if goerrors.Is(err, schedule.ErrCancelled) || goerrors.Is(err, schedule.ErrClosed) {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "admission withdrawn")
		}
		return nil, errors.Wrap(err, "awaiting admission")
	}

	requestID := uuid.New().String()
	if c.logger != nil {
		c.logger.Debug("admission_granted", map[string]interface{}{
			"request_id": requestID,
			"seq":        adm.Seq(),
		})
		c.logger.SearchStart(c.provider.Name(), q.Text)
	}

	start := time.Now()
	results, err := c.provider.Search(ctx, q)
	if c.logger != nil {
		c.logger.SearchResult(c.provider.Name(), q.Text, len(results), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Store(q.Text, results); err != nil && c.logger != nil {
			c.logger.Warn("cache_store_failed", map[string]interface{}{
				"query": q.Text,
				"error": err.Error(),
			})
		}
	}
	return results, nil
}

// Answer searches for the question and condenses the results into a short
// answer. It requires a configured summarizer.
func (c *Client) Answer(ctx context.Context, question string, count int) (string, []Result, error) {
	if c.summarizer == nil {
		return "", nil, errors.New(errors.CodeUnsupported, "no summarizer configured")
	}

	results, err := c.Search(ctx, Query{Text: question, Count: count})
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return "", nil, errors.New(errors.CodeNotFound, "no results for question")
	}

	answer, err := c.summarizer.Summarize(ctx, RenderResults(results), question)
	if err != nil {
		return "", results, errors.Wrap(err, "summarizing results")
	}
	return answer, results, nil
}

// RenderResults formats results as plain text, one block per result.
func RenderResults(results []Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.URL, r.Snippet)
	}
	return strings.TrimSpace(b.String())
}
