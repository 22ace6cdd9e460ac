package search

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"deepagent/internal/config"
	"deepagent/internal/mcp"
	"deepagent/internal/tool"
)

// Environment fallbacks for backend API keys
const (
	BraveAPIKeyEnv  = "BRAVE_SEARCH_API_KEY"
	TavilyAPIKeyEnv = "TAVILY_API_KEY"
)

// Open builds the searcher selected by cfg. The returned close function
// releases backend resources and is never nil.
func Open(ctx context.Context, cfg config.SearchConfig) (tool.Searcher, func() error, error) {
	noop := func() error { return nil }
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case config.BackendDuckDuckGo, "":
		d := NewDuckDuckGoWithClient(client)
		d.SetMaxResults(cfg.MaxResults)
		return AsText(d), noop, nil

	case config.BackendBrave:
		key := apiKey(cfg.APIKey, BraveAPIKeyEnv)
		if key == "" {
			return nil, noop, fmt.Errorf("brave search requires an API key (search.api_key or %s)", BraveAPIKeyEnv)
		}
		b := NewBraveWithClient(key, client)
		b.SetMaxResults(cfg.MaxResults)
		return AsText(b), noop, nil

	case config.BackendTavily:
		key := apiKey(cfg.APIKey, TavilyAPIKeyEnv)
		if key == "" {
			return nil, noop, fmt.Errorf("tavily search requires an API key (search.api_key or %s)", TavilyAPIKeyEnv)
		}
		t := NewTavilyWithClient(key, cfg.Depth, client)
		t.SetMaxResults(cfg.MaxResults)
		return AsText(t), noop, nil

	case config.BackendMCP:
		srv := cfg.MCP.Server
		c, err := mcp.NewClient(ctx, srv.Name, srv.Command, srv.Args, srv.Env)
		if err != nil {
			return nil, noop, fmt.Errorf("mcp server %s: %w", srv.Name, err)
		}
		m, err := NewMCP(c, cfg.MCP.Tool, cfg.MCP.Argument)
		if err != nil {
			c.Close()
			return nil, noop, err
		}
		return m, m.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported search backend: %s", cfg.Backend)
}

func apiKey(configured, env string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(env)
}
