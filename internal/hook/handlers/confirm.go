package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"deepagent/internal/hook"
)

// SearchConfirmHandler asks the user before a tool runs. The user may accept
// the query, reject it, or type a replacement query.
type SearchConfirmHandler struct {
	reader    *bufio.Reader
	writer    io.Writer
	toolNames map[string]bool // Only confirm these tools (empty = all)
}

// NewSearchConfirmHandler creates a handler that reads answers from stdin
func NewSearchConfirmHandler(tools ...string) *SearchConfirmHandler {
	return NewSearchConfirmHandlerWithIO(os.Stdin, os.Stdout, tools...)
}

// NewSearchConfirmHandlerWithIO creates a handler with custom IO (for testing)
func NewSearchConfirmHandlerWithIO(reader io.Reader, writer io.Writer, tools ...string) *SearchConfirmHandler {
	toolNames := make(map[string]bool)
	for _, t := range tools {
		toolNames[t] = true
	}
	return &SearchConfirmHandler{
		reader:    bufio.NewReader(reader),
		writer:    writer,
		toolNames: toolNames,
	}
}

func (h *SearchConfirmHandler) Name() string {
	return "search_confirm"
}

func (h *SearchConfirmHandler) Points() []hook.HookPoint {
	return []hook.HookPoint{hook.BeforeToolExecution}
}

func (h *SearchConfirmHandler) Priority() int {
	return 100 // High priority - runs first
}

func (h *SearchConfirmHandler) Handle(ctx context.Context, data *hook.HookData) (*hook.Feedback, error) {
	if len(h.toolNames) > 0 && !h.toolNames[data.ToolName] {
		return hook.AllowFeedback(), nil
	}

	argument := data.GetString(hook.KeyArgument)

	fmt.Fprintf(h.writer, "\n\033[33m⚠️  %s wants to search:\033[0m\n", data.ToolName)
	fmt.Fprintf(h.writer, "    \033[1m%s\033[0m\n\n", argument)
	fmt.Fprintf(h.writer, "Allow? [y/N/e=edit]: ")

	input, ok := h.readLine()
	if !ok {
		return hook.DenyFeedback("No input received"), nil
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		fmt.Fprintf(h.writer, "\033[32m✓ Allowed\033[0m\n\n")
		return hook.AllowFeedback(), nil
	case "e", "edit":
		fmt.Fprintf(h.writer, "New query: ")
		query, ok := h.readLine()
		if !ok || query == "" {
			return hook.DenyFeedback("Empty replacement query"), nil
		}
		fmt.Fprintf(h.writer, "\033[32m✓ Searching for %q\033[0m\n\n", query)
		return &hook.Feedback{Allow: true, Modified: query}, nil
	default:
		fmt.Fprintf(h.writer, "\033[31m✗ Denied\033[0m\n\n")
		return hook.DenyFeedback("User denied search"), nil
	}
}

func (h *SearchConfirmHandler) readLine() (string, bool) {
	line, err := h.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
