package search

import (
	"context"
	"fmt"

	"deepagent/internal/mcp"
)

// MCP forwards queries to a tool exposed by an MCP server. The server's
// text output is used as the observation as-is.
type MCP struct {
	client   *mcp.Client
	tool     string
	argument string
}

// NewMCP wraps an already connected client
func NewMCP(client *mcp.Client, tool, argument string) (*MCP, error) {
	if !client.HasTool(tool) {
		return nil, fmt.Errorf("mcp server %s has no tool %q", client.Name(), tool)
	}
	if argument == "" {
		argument = "query"
	}
	return &MCP{client: client, tool: tool, argument: argument}, nil
}

func (m *MCP) Search(ctx context.Context, query string) (string, error) {
	return m.client.CallText(ctx, m.tool, map[string]any{m.argument: query})
}

// Close shuts down the MCP session
func (m *MCP) Close() error {
	return m.client.Close()
}
