// Package config loads and validates the proxy configuration.
//
// Misconfiguration is always rejected at load time and returned as an error;
// nothing here terminates the process.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/altgrove/searchgate/errors"
)

// Known provider names.
var (
	searchProviders  = map[string]bool{"": true, "brave": true, "tavily": true, "google": true, "duckduckgo": true}
	summaryProviders = map[string]bool{"": true, "anthropic": true, "openai": true, "gemini": true}
)

// Duration wraps time.Duration for TOML decoding from strings like "1s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full proxy configuration.
type Config struct {
	Scheduler SchedulerConfig `toml:"scheduler"`
	Search    SearchConfig    `toml:"search"`
	Summary   SummaryConfig   `toml:"summary"`
	Cache     CacheConfig     `toml:"cache"`
}

// SchedulerConfig configures the admission scheduler.
type SchedulerConfig struct {
	// MinDelay is the floor between consecutive dispatches to the
	// downstream API. Zero disables throttling.
	MinDelay Duration `toml:"min_delay"`
}

// SearchConfig configures the downstream search provider.
type SearchConfig struct {
	// Provider selects the search backend. Empty means auto-select by
	// available credentials (brave, then tavily, then google, then the
	// keyless duckduckgo fallback).
	Provider string `toml:"provider"`

	// MaxResults is the default result count per query (1-10).
	MaxResults int `toml:"max_results"`

	// Timeout bounds a single downstream call.
	Timeout Duration `toml:"timeout"`
}

// SummaryConfig configures the optional answer summarizer.
type SummaryConfig struct {
	// Provider selects the LLM backend (anthropic, openai, gemini).
	// Empty disables summarization.
	Provider string `toml:"provider"`

	// Model is the model identifier; required when Provider is set.
	Model string `toml:"model"`

	// MaxTokens caps the summarizer response.
	MaxTokens int `toml:"max_tokens"`
}

// CacheConfig configures the local result cache.
type CacheConfig struct {
	// Enabled turns the bleve-backed result cache on.
	Enabled bool `toml:"enabled"`

	// Path is the cache directory.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Scheduler: SchedulerConfig{MinDelay: Duration{time.Second}},
		Search:    SearchConfig{MaxResults: 5, Timeout: Duration{15 * time.Second}},
		Summary:   SummaryConfig{MaxTokens: 1000},
		Cache:     CacheConfig{Path: ".searchgate/cache"},
	}
}

// Load reads a TOML config file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfig, "reading config file")
	}

	cfg := Default()
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfig, "parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the proxy cannot run with.
func (c *Config) Validate() error {
	if c.Scheduler.MinDelay.Duration < 0 {
		return errors.New(errors.CodeInvalidConfig, "scheduler.min_delay must be non-negative")
	}
	if c.Search.MaxResults < 1 || c.Search.MaxResults > 10 {
		return errors.Newf(errors.CodeInvalidConfig, "search.max_results must be 1-10, got %d", c.Search.MaxResults)
	}
	if c.Search.Timeout.Duration <= 0 {
		return errors.New(errors.CodeInvalidConfig, "search.timeout must be positive")
	}
	if !searchProviders[c.Search.Provider] {
		return errors.Newf(errors.CodeInvalidConfig, "unknown search provider %q", c.Search.Provider)
	}
	if !summaryProviders[c.Summary.Provider] {
		return errors.Newf(errors.CodeInvalidConfig, "unknown summary provider %q", c.Summary.Provider)
	}
	if c.Summary.Provider != "" && c.Summary.Model == "" {
		return errors.New(errors.CodeInvalidConfig, "summary.model is required when a summary provider is set")
	}
	if c.Summary.MaxTokens <= 0 {
		return errors.New(errors.CodeInvalidConfig, "summary.max_tokens must be positive")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return errors.New(errors.CodeInvalidConfig, "cache.path is required when the cache is enabled")
	}
	return nil
}
