// Package cache provides a persistent result cache backed by a Bleve index.
//
// Every successful search stores its result set under a normalized query key.
// Lookup serves exact repeats without touching the upstream provider, and
// Recall runs BM25 full-text search over everything cached so far, which makes
// old results useful even when the wording of a query changes.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"

	"github.com/altgrove/searchgate/search"
)

// Cache is a Bleve-backed store of past search results. It implements
// search.ResultCache. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	index bleve.Index
	path  string
}

// Config configures the cache.
type Config struct {
	// Path is the directory holding the index files.
	Path string
}

// entryDocument is one cached result set in the index.
type entryDocument struct {
	ID        string    `json:"id"`
	QueryKey  string    `json:"query_key"`
	Query     string    `json:"query"`
	Text      string    `json:"text"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// New opens the cache at cfg.Path, creating the index if it does not exist.
func New(cfg Config) (*Cache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path is required")
	}
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	indexPath := filepath.Join(cfg.Path, "results.bleve")

	var index bleve.Index
	var err error
	if _, statErr := os.Stat(indexPath); os.IsNotExist(statErr) {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create cache index: %w", err)
		}
	} else {
		index, err = bleve.Open(indexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache index: %w", err)
		}
	}

	return &Cache{index: index, path: cfg.Path}, nil
}

// buildIndexMapping creates the Bleve index mapping for cached entries.
func buildIndexMapping() mapping.IndexMapping {
	entryMapping := bleve.NewDocumentMapping()

	// Text fields (analyzed for full-text recall)
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name

	// Keyword field (not analyzed, exact match on the query key)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	// Payload is stored verbatim and never searched.
	payloadFieldMapping := bleve.NewTextFieldMapping()
	payloadFieldMapping.Index = false
	payloadFieldMapping.Store = true
	payloadFieldMapping.IncludeInAll = false

	dateFieldMapping := bleve.NewDateTimeFieldMapping()

	entryMapping.AddFieldMappingsAt("query_key", keywordFieldMapping)
	entryMapping.AddFieldMappingsAt("query", textFieldMapping)
	entryMapping.AddFieldMappingsAt("text", textFieldMapping)
	entryMapping.AddFieldMappingsAt("payload", payloadFieldMapping)
	entryMapping.AddFieldMappingsAt("created_at", dateFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = entryMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// normalizeKey collapses whitespace and case so trivially different spellings
// of the same query share a cache entry.
func normalizeKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Store caches the results of a successful search, replacing any previous
// entry for the same query.
func (c *Cache) Store(query string, results []search.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := normalizeKey(query)
	if key == "" {
		return fmt.Errorf("empty query")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	// Drop the previous entry for this key so Lookup stays unambiguous.
	if prev, ok := c.findByKey(key); ok {
		if err := c.index.Delete(prev); err != nil {
			return fmt.Errorf("failed to replace cache entry: %w", err)
		}
	}

	var text strings.Builder
	for _, r := range results {
		text.WriteString(r.Title)
		text.WriteString("\n")
		text.WriteString(r.Snippet)
		text.WriteString("\n")
	}

	id := uuid.New().String()
	doc := entryDocument{
		ID:        id,
		QueryKey:  key,
		Query:     query,
		Text:      text.String(),
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}

	if err := c.index.Index(id, doc); err != nil {
		return fmt.Errorf("failed to index cache entry: %w", err)
	}
	return nil
}

// Lookup returns cached results for an exact query, if present.
func (c *Cache) Lookup(query string) ([]search.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := normalizeKey(query)
	if key == "" {
		return nil, false
	}

	termQuery := bleve.NewTermQuery(key)
	termQuery.SetField("query_key")
	searchReq := bleve.NewSearchRequest(termQuery)
	searchReq.Size = 1
	searchReq.Fields = []string{"payload"}

	searchResult, err := c.index.Search(searchReq)
	if err != nil || searchResult.Total == 0 {
		return nil, false
	}

	payload, ok := searchResult.Hits[0].Fields["payload"].(string)
	if !ok {
		return nil, false
	}

	var results []search.Result
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false
	}
	return results, true
}

// Recall runs full-text search over cached titles and snippets, returning up
// to limit results across all cached entries. Duplicate URLs are collapsed.
func (c *Cache) Recall(text string, limit int) ([]search.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if limit <= 0 {
		limit = 5
	}

	matchQuery := bleve.NewMatchQuery(text)
	searchReq := bleve.NewSearchRequest(matchQuery)
	searchReq.Size = limit
	searchReq.Fields = []string{"payload"}

	searchResult, err := c.index.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("recall failed: %w", err)
	}

	seen := make(map[string]bool)
	var results []search.Result
	for _, hit := range searchResult.Hits {
		payload, ok := hit.Fields["payload"].(string)
		if !ok {
			continue
		}
		var entry []search.Result
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			continue
		}
		for _, r := range entry {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			results = append(results, r)
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// Count returns the number of cached result sets.
func (c *Cache) Count() (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.DocCount()
}

// Close releases the underlying index.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Close()
}

// findByKey returns the document ID for an exact query key. Caller holds the
// lock.
func (c *Cache) findByKey(key string) (string, bool) {
	termQuery := bleve.NewTermQuery(key)
	termQuery.SetField("query_key")
	searchReq := bleve.NewSearchRequest(termQuery)
	searchReq.Size = 1

	searchResult, err := c.index.Search(searchReq)
	if err != nil || searchResult.Total == 0 {
		return "", false
	}
	return searchResult.Hits[0].ID, true
}
