// Package summary condenses search results into short answers using an LLM
// completion backend.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/altgrove/searchgate/errors"
)

// Provider is a text-only completion backend.
type Provider interface {
	// Name identifies the backend ("anthropic", "openai", "gemini").
	Name() string
	// Complete sends a single prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer answers a question from retrieved content. It satisfies the
// search.Summarizer interface.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer over the given completion backend.
func NewSummarizer(provider Provider) (*Summarizer, error) {
	if provider == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "summarizer requires a completion provider")
	}
	return &Summarizer{provider: provider}, nil
}

// Summarize extracts an answer for question from content.
func (s *Summarizer) Summarize(ctx context.Context, content, question string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New(errors.CodeInvalidInput, "no content to summarize")
	}
	if strings.TrimSpace(question) == "" {
		return "", errors.New(errors.CodeInvalidInput, "question is required")
	}

	prompt := fmt.Sprintf(`Search results:
---
%s
---

%s

Provide a concise response based only on the results above. In your response:
- Keep the answer focused and relevant to the question
- Use quotation marks for exact language from the results
- Limit quotes to 125 characters maximum
- If the results don't contain relevant information, say so
- Be concise but thorough`, content, question)

	answer, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", errors.Wrapf(err, "summarization call to %s failed", s.provider.Name())
	}
	return answer, nil
}
