package tools

import (
	"context"

	"github.com/altgrove/searchgate/search"
)

// Searcher runs gated web searches. Implemented by search.Client.
type Searcher interface {
	Search(ctx context.Context, q search.Query) ([]search.Result, error)
}

// webSearchTool exposes the gated search client as a tool.
type webSearchTool struct {
	client Searcher
}

// NewWebSearchTool creates the web_search tool over the given client. Every
// call goes through the client's admission scheduler, so tool callers share
// the same pacing as direct API users.
func NewWebSearchTool(client Searcher) Tool {
	return &webSearchTool{client: client}
}

func (t *webSearchTool) Name() string { return "web_search" }

func (t *webSearchTool) Description() string {
	return "Search the web. Returns a list of results with title, URL and snippet."
}

func (t *webSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query",
			},
			"count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of results (1-10, default 5)",
			},
		},
		"required": []string{"query"},
	}
}

func (t *webSearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	a := Args(args)
	query, err := a.String("query")
	if err != nil {
		return nil, err
	}
	count := a.IntOr("count", 5)

	return t.client.Search(ctx, search.Query{Text: query, Count: count})
}
