package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/altgrove/searchgate/errors"
)

func TestBraveProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Subscription-Token"); got != "test-key" {
			t.Errorf("missing subscription token, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "go schedulers" {
			t.Errorf("query = %q, want 'go schedulers'", got)
		}
		if got := r.URL.Query().Get("count"); got != "2" {
			t.Errorf("count = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"web":{"results":[
			{"title":"First","url":"https://a.example","description":"one"},
			{"title":"Second","url":"https://b.example","description":"two"}]}}`))
	}))
	defer server.Close()

	p, err := NewBraveProvider(BraveConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewBraveProvider failed: %v", err)
	}

	results, err := p.Search(context.Background(), Query{Text: "go schedulers", Count: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "First" || results[0].URL != "https://a.example" || results[0].Snippet != "one" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestBraveProvider_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	p, err := NewBraveProvider(BraveConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewBraveProvider failed: %v", err)
	}

	_, err = p.Search(context.Background(), Query{Text: "anything"})
	if !errors.IsRateLimited(err) {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}
	classified := errors.AsClassified(err)
	if classified.Metadata()["body"] != `{"error":"quota exceeded"}` {
		t.Errorf("body metadata = %q", classified.Metadata()["body"])
	}
}

func TestBraveProvider_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	p, err := NewBraveProvider(BraveConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewBraveProvider failed: %v", err)
	}

	_, err = p.Search(context.Background(), Query{Text: "anything"})
	if errors.ErrCode(err) != errors.CodeNetwork {
		t.Fatalf("expected NETWORK_ERR, got %v", err)
	}
}

func TestBraveProvider_RequiresKey(t *testing.T) {
	_, err := NewBraveProvider(BraveConfig{})
	if errors.ErrCode(err) != errors.CodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestTavilyProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"Doc","url":"https://docs.example","content":"snippet"}]}`))
	}))
	defer server.Close()

	p, err := NewTavilyProvider(TavilyConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewTavilyProvider failed: %v", err)
	}

	results, err := p.Search(context.Background(), Query{Text: "docs"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Snippet != "snippet" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestTavilyProvider_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	p, err := NewTavilyProvider(TavilyConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewTavilyProvider failed: %v", err)
	}

	_, err = p.Search(context.Background(), Query{Text: "docs"})
	classified := errors.AsClassified(err)
	if classified == nil || classified.Code() != errors.CodeUpstream {
		t.Fatalf("expected UPSTREAM, got %v", err)
	}
	if classified.(*errors.Error).HTTPStatus() != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", classified.(*errors.Error).HTTPStatus())
	}
}

const ddgSample = `
<div class="result">
  <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fblog%2F&amp;rut=abc">The Go Blog</a>
  <a class="result__snippet" href="//go.dev">News from the <b>Go</b> project</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://pkg.go.dev/time">time package</a>
  <a class="result__snippet" href="//pkg.go.dev">Package time provides functionality</a>
</div>`

func TestDuckDuckGoProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(ddgSample))
	}))
	defer server.Close()

	p := NewDuckDuckGoProvider(DuckDuckGoConfig{BaseURL: server.URL})

	results, err := p.Search(context.Background(), Query{Text: "golang", Count: 5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].URL != "https://go.dev/blog/" {
		t.Errorf("redirect not unwrapped: %q", results[0].URL)
	}
	if results[0].Title != "The Go Blog" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].Snippet != "News from the Go project" {
		t.Errorf("snippet tags not stripped: %q", results[0].Snippet)
	}
}

func TestParseDuckDuckGoHTML_RespectsCount(t *testing.T) {
	results := parseDuckDuckGoHTML(ddgSample, 1)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestQueryNormalization(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultResults},
		{-3, MinResults},
		{7, 7},
		{50, MaxResults},
	}
	for _, tt := range tests {
		if got := (Query{Text: "x", Count: tt.in}).normalized().Count; got != tt.want {
			t.Errorf("normalized(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
