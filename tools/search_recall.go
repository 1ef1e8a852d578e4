package tools

import (
	"context"

	"github.com/altgrove/searchgate/search"
)

// Recaller searches previously cached results. Implemented by cache.Cache.
type Recaller interface {
	Recall(text string, limit int) ([]search.Result, error)
}

// searchRecallTool runs full-text recall over the local result cache. It
// never touches the upstream provider and needs no admission slot.
type searchRecallTool struct {
	cache Recaller
}

// NewSearchRecallTool creates the search_recall tool over the given cache.
func NewSearchRecallTool(cache Recaller) Tool {
	return &searchRecallTool{cache: cache}
}

func (t *searchRecallTool) Name() string { return "search_recall" }

func (t *searchRecallTool) Description() string {
	return "Search previously fetched results in the local cache. Free and instant; use before web_search for repeat topics."
}

func (t *searchRecallTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to search for in cached titles and snippets",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum results to return (default 5)",
			},
		},
		"required": []string{"text"},
	}
}

func (t *searchRecallTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	a := Args(args)
	text, err := a.String("text")
	if err != nil {
		return nil, err
	}
	limit := a.IntOr("limit", 5)

	return t.cache.Recall(text, limit)
}
