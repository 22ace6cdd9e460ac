package tool

import (
	"context"
	"fmt"
)

// Searcher is the boundary to whatever backend answers DeepSearch queries
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// SearcherFunc adapts a plain function to the Searcher interface
type SearcherFunc func(ctx context.Context, query string) (string, error)

func (f SearcherFunc) Search(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// SearchTool exposes a Searcher as the DeepSearch tool
type SearchTool struct {
	searcher Searcher
}

func NewSearchTool(searcher Searcher) *SearchTool {
	return &SearchTool{searcher: searcher}
}

func (t *SearchTool) Kind() Kind {
	return DeepSearch
}

func (t *SearchTool) Description() string {
	return "Search the web for a keyword and return the matching text"
}

// Execute runs the search. Backend failures are returned unchanged so the
// caller sees the original error.
func (t *SearchTool) Execute(ctx context.Context, argument string) (*Result, error) {
	if t.searcher == nil {
		return nil, fmt.Errorf("%s has no search backend", t.Kind())
	}

	output, err := t.searcher.Search(ctx, argument)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success: true,
		Output:  output,
		Data: map[string]any{
			"query": argument,
		},
	}, nil
}

func (t *SearchTool) ExecuteAsync(ctx context.Context, argument string) (<-chan *Result, error) {
	return nil, fmt.Errorf("%s: %w", t.Kind(), ErrAsyncUnsupported)
}
