package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	results []Result
	err     error
}

func (p staticProvider) Search(ctx context.Context, query string) ([]Result, error) {
	return p.results, p.err
}

func TestFormat(t *testing.T) {
	out := Format("Elon Musk", []Result{
		{Title: "Musk announces X", URL: "https://example.com/x", Snippet: "He announced X."},
		{Title: "No link"},
	})

	want := "Search results for \"Elon Musk\":\n\n" +
		"1. Musk announces X\n   https://example.com/x\n   He announced X.\n\n" +
		"2. No link"
	assert.Equal(t, want, out)
}

func TestFormat_NoResults(t *testing.T) {
	assert.Equal(t, "No results found for: nothing", Format("nothing", nil))
}

func TestAsText(t *testing.T) {
	s := AsText(staticProvider{results: []Result{{Title: "a"}}})
	out, err := s.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Search results for \"q\":\n\n1. a", out)

	boom := errors.New("backend down")
	_, err = AsText(staticProvider{err: boom}).Search(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
}

func TestLimit(t *testing.T) {
	rs := make([]Result, 8)
	assert.Len(t, limit(rs, 3), 3)
	assert.Len(t, limit(rs, 0), defaultMaxResults)
	assert.Len(t, limit(rs[:2], 5), 2)
}
