package search

import (
	"context"

	"github.com/altgrove/searchgate/errors"
)

// KeySource supplies provider API keys. Implemented by credentials.Credentials.
type KeySource interface {
	GetAPIKey(provider string) string
	GetEngineID() string
}

// SelectProvider returns the first provider with credentials available, in
// order brave, tavily, google, then the keyless DuckDuckGo fallback. A nil
// KeySource skips straight to DuckDuckGo.
func SelectProvider(ctx context.Context, keys KeySource) (Provider, error) {
	if keys != nil {
		if key := keys.GetAPIKey("brave"); key != "" {
			return NewBraveProvider(BraveConfig{APIKey: key})
		}
		if key := keys.GetAPIKey("tavily"); key != "" {
			return NewTavilyProvider(TavilyConfig{APIKey: key})
		}
		if key := keys.GetAPIKey("google"); key != "" {
			if engineID := keys.GetEngineID(); engineID != "" {
				return NewGoogleProvider(ctx, GoogleConfig{APIKey: key, EngineID: engineID})
			}
		}
	}
	return NewDuckDuckGoProvider(DuckDuckGoConfig{}), nil
}

// NewProvider constructs a provider by name, using keys for any required
// credentials. An empty name selects automatically via SelectProvider.
func NewProvider(ctx context.Context, name string, keys KeySource) (Provider, error) {
	switch name {
	case "":
		return SelectProvider(ctx, keys)
	case "brave":
		return NewBraveProvider(BraveConfig{APIKey: apiKey(keys, "brave")})
	case "tavily":
		return NewTavilyProvider(TavilyConfig{APIKey: apiKey(keys, "tavily")})
	case "google":
		cfg := GoogleConfig{APIKey: apiKey(keys, "google")}
		if keys != nil {
			cfg.EngineID = keys.GetEngineID()
		}
		return NewGoogleProvider(ctx, cfg)
	case "duckduckgo":
		return NewDuckDuckGoProvider(DuckDuckGoConfig{}), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown search provider %q", name)
	}
}

func apiKey(keys KeySource, provider string) string {
	if keys == nil {
		return ""
	}
	return keys.GetAPIKey(provider)
}
