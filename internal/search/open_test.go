package search

import (
	"context"
	"testing"

	"deepagent/internal/config"
	"deepagent/internal/mcp"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Backends(t *testing.T) {
	t.Setenv(BraveAPIKeyEnv, "")
	t.Setenv(TavilyAPIKeyEnv, "")

	s, closeFn, err := Open(context.Background(), config.Default().Search)
	require.NoError(t, err)
	assert.IsType(t, &TextSearcher{}, s)
	assert.NoError(t, closeFn())

	_, _, err = Open(context.Background(), config.SearchConfig{Backend: config.BackendBrave})
	assert.Error(t, err, "brave without key")

	t.Setenv(TavilyAPIKeyEnv, "from-env")
	s, _, err = Open(context.Background(), config.SearchConfig{Backend: config.BackendTavily})
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.(*TextSearcher).provider.(*Tavily).APIKey)

	_, _, err = Open(context.Background(), config.SearchConfig{Backend: "altavista"})
	assert.Error(t, err)
}

type queryArgs struct {
	Q string `json:"q"`
}

func connectSearchServer(t *testing.T) *mcp.Client {
	t.Helper()
	ctx := context.Background()

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "search", Version: "0.0.1"}, nil)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "web_search", Description: "search"},
		func(ctx context.Context, req *mcpsdk.CallToolRequest, args queryArgs) (*mcpsdk.CallToolResult, any, error) {
			return &mcpsdk.CallToolResult{
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "found: " + args.Q}},
			}, nil, nil
		})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client, err := mcp.Connect(ctx, "local", clientTransport)
	require.NoError(t, err)
	return client
}

func TestMCP_Search(t *testing.T) {
	client := connectSearchServer(t)

	m, err := NewMCP(client, "web_search", "q")
	require.NoError(t, err)
	defer m.Close()

	out, err := m.Search(context.Background(), "Elon Musk")
	require.NoError(t, err)
	assert.Equal(t, "found: Elon Musk", out)
}

func TestMCP_UnknownTool(t *testing.T) {
	client := connectSearchServer(t)
	defer client.Close()

	_, err := NewMCP(client, "image_search", "")
	assert.Error(t, err)
}
