package cache

import (
	"testing"

	"github.com/altgrove/searchgate/search"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_StoreLookup(t *testing.T) {
	c := newTestCache(t)

	results := []search.Result{
		{Title: "Go concurrency patterns", URL: "https://example.com/go", Snippet: "Pipelines and cancellation in Go."},
		{Title: "Channels explained", URL: "https://example.com/chan", Snippet: "How channels synchronize goroutines."},
	}

	if err := c.Store("go concurrency", results); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	got, ok := c.Lookup("go concurrency")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Title != results[0].Title || got[0].URL != results[0].URL {
		t.Errorf("first result mismatch: %+v", got[0])
	}
	if got[1].Snippet != results[1].Snippet {
		t.Errorf("second result mismatch: %+v", got[1])
	}
}

func TestCache_LookupMiss(t *testing.T) {
	c := newTestCache(t)

	if _, ok := c.Lookup("never stored"); ok {
		t.Error("expected cache miss")
	}
}

func TestCache_LookupNormalizesQuery(t *testing.T) {
	c := newTestCache(t)

	results := []search.Result{{Title: "t", URL: "https://example.com", Snippet: "s"}}
	if err := c.Store("Go  Concurrency", results); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if _, ok := c.Lookup("go concurrency"); !ok {
		t.Error("expected hit for whitespace and case variant")
	}
}

func TestCache_StoreReplacesEntry(t *testing.T) {
	c := newTestCache(t)

	old := []search.Result{{Title: "old", URL: "https://example.com/old", Snippet: "stale"}}
	if err := c.Store("query", old); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	fresh := []search.Result{{Title: "fresh", URL: "https://example.com/new", Snippet: "current"}}
	if err := c.Store("query", fresh); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	got, ok := c.Lookup("query")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Title != "fresh" {
		t.Errorf("expected replaced entry, got %+v", got)
	}

	count, err := c.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry after replace, got %d", count)
	}
}

func TestCache_Recall(t *testing.T) {
	c := newTestCache(t)

	if err := c.Store("go scheduling", []search.Result{
		{Title: "Goroutine scheduler internals", URL: "https://example.com/sched", Snippet: "How the runtime schedules goroutines."},
	}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := c.Store("baking bread", []search.Result{
		{Title: "Sourdough basics", URL: "https://example.com/bread", Snippet: "Starter, hydration, proofing."},
	}); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	results, err := c.Recall("goroutines scheduler", 5)
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	if len(results) < 1 {
		t.Fatal("expected at least 1 recall result")
	}
	if results[0].URL != "https://example.com/sched" {
		t.Errorf("expected scheduler result first, got %+v", results[0])
	}
}

func TestCache_RecallDeduplicatesURLs(t *testing.T) {
	c := newTestCache(t)

	dup := search.Result{Title: "Shared concurrency page", URL: "https://example.com/same", Snippet: "concurrency primitives"}
	if err := c.Store("concurrency query one", []search.Result{dup}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := c.Store("concurrency query two", []search.Result{dup}); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	results, err := c.Recall("concurrency", 10)
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected duplicate URL collapsed, got %d results", len(results))
	}
}

func TestCache_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	c, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if err := c.Store("durable query", []search.Result{
		{Title: "kept", URL: "https://example.com/kept", Snippet: "survives reopen"},
	}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Lookup("durable query")
	if !ok {
		t.Fatal("expected hit after reopen")
	}
	if got[0].Title != "kept" {
		t.Errorf("unexpected result after reopen: %+v", got[0])
	}
}
