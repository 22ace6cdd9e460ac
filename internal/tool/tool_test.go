package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTool_Execute(t *testing.T) {
	var got string
	st := NewSearchTool(SearcherFunc(func(ctx context.Context, query string) (string, error) {
		got = query
		return "Musk announced X", nil
	}))

	res, err := st.Execute(context.Background(), "Elon Musk news")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Musk announced X", res.Output)
	assert.Equal(t, "Elon Musk news", got)
	assert.Equal(t, "Elon Musk news", res.Data["query"])
}

func TestSearchTool_ExecutePropagatesBackendError(t *testing.T) {
	backendErr := errors.New("search backend unavailable")
	st := NewSearchTool(SearcherFunc(func(ctx context.Context, query string) (string, error) {
		return "", backendErr
	}))

	res, err := st.Execute(context.Background(), "anything")
	assert.Nil(t, res)
	assert.Same(t, backendErr, err)
}

func TestSearchTool_ExecuteWithoutBackend(t *testing.T) {
	_, err := NewSearchTool(nil).Execute(context.Background(), "q")
	assert.Error(t, err)
}

func TestSearchTool_ExecuteAsyncUnsupported(t *testing.T) {
	st := NewSearchTool(SearcherFunc(func(ctx context.Context, query string) (string, error) {
		t.Fatal("searcher must not be called")
		return "", nil
	}))

	ch, err := st.ExecuteAsync(context.Background(), "q")
	assert.Nil(t, ch)
	assert.ErrorIs(t, err, ErrAsyncUnsupported)
}

func TestKind(t *testing.T) {
	assert.True(t, DeepSearch.Valid())
	assert.False(t, Kind("deepsearch").Valid())
	assert.Equal(t, "DeepSearch", DeepSearch.String())
	assert.Equal(t, []Kind{DeepSearch}, Kinds())
	assert.Equal(t, `DeepSearch("tesla stock")`, Call{Kind: DeepSearch, Argument: "tesla stock"}.String())
}
