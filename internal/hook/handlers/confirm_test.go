package handlers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"deepagent/internal/hook"
)

func confirm(t *testing.T, input string, tools ...string) (*hook.Feedback, string) {
	t.Helper()

	var out bytes.Buffer
	h := NewSearchConfirmHandlerWithIO(strings.NewReader(input), &out, tools...)

	data := hook.NewHookData(hook.BeforeToolExecution, "DeepSearch").
		Set(hook.KeyArgument, "Elon Musk news")

	fb, err := h.Handle(context.Background(), data)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	return fb, out.String()
}

func TestSearchConfirm_Allow(t *testing.T) {
	fb, out := confirm(t, "y\n")

	if !fb.Allow {
		t.Errorf("Expected allow, got deny: %s", fb.Message)
	}
	if !strings.Contains(out, "Elon Musk news") {
		t.Errorf("Prompt should show the query, got: %s", out)
	}
}

func TestSearchConfirm_Deny(t *testing.T) {
	for _, input := range []string{"n\n", "\n", "whatever\n", ""} {
		fb, _ := confirm(t, input)
		if fb.Allow {
			t.Errorf("Expected deny for input %q", input)
		}
	}
}

func TestSearchConfirm_Edit(t *testing.T) {
	fb, _ := confirm(t, "e\nTesla earnings 2026\n")

	if !fb.Allow {
		t.Fatalf("Expected allow after edit, got deny: %s", fb.Message)
	}
	if fb.Modified != "Tesla earnings 2026" {
		t.Errorf("Expected modified query, got: %v", fb.Modified)
	}
}

func TestSearchConfirm_EditEmpty(t *testing.T) {
	fb, _ := confirm(t, "e\n\n")
	if fb.Allow {
		t.Error("Expected deny for empty replacement query")
	}
}

func TestSearchConfirm_OtherToolSkipped(t *testing.T) {
	fb, out := confirm(t, "", "SomeOtherTool")

	if !fb.Allow {
		t.Error("Tools outside the list should be allowed without asking")
	}
	if out != "" {
		t.Errorf("Expected no prompt, got: %s", out)
	}
}
