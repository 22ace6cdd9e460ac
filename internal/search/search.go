package search

import (
	"context"
	"fmt"
	"strings"
)

const defaultMaxResults = 5

// Result is a single item returned by a Provider
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Provider executes a query and returns structured results
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Format renders results as the numbered text block used as an observation
func Format(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %s", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for %q:\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&sb, "   %s\n", r.URL)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TextSearcher turns a Provider into a text-returning searcher
type TextSearcher struct {
	provider Provider
}

// AsText wraps p so its results come back as Format text
func AsText(p Provider) *TextSearcher {
	return &TextSearcher{provider: p}
}

func (s *TextSearcher) Search(ctx context.Context, query string) (string, error) {
	results, err := s.provider.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return Format(query, results), nil
}

func limit(results []Result, n int) []Result {
	if n <= 0 {
		n = defaultMaxResults
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}
