package tool

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAsyncUnsupported is returned when a tool is asked to run asynchronously
var ErrAsyncUnsupported = errors.New("asynchronous execution is not supported")

// Kind identifies one of the tools the agent knows about.
// The set is closed: adding a tool means adding a constant here and a case
// wherever calls are dispatched.
type Kind string

const (
	// DeepSearch looks up a query with the configured search backend
	DeepSearch Kind = "DeepSearch"
)

// Kinds returns every known tool kind
func Kinds() []Kind {
	return []Kind{DeepSearch}
}

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Call is a single tool invocation extracted from model output
type Call struct {
	Kind     Kind
	Argument string
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%q)", c.Kind, c.Argument)
}

// Tool defines the interface that all tools must implement
type Tool interface {
	// Kind returns the closed identifier for this tool
	Kind() Kind

	// Description returns a brief description of what this tool does
	Description() string

	// Execute runs the tool synchronously with a single string argument
	Execute(ctx context.Context, argument string) (*Result, error)

	// ExecuteAsync is part of the contract so callers get a clear error
	// instead of a silent fallback. No tool implements it.
	ExecuteAsync(ctx context.Context, argument string) (<-chan *Result, error)
}

type Result struct {
	Success bool
	Output  string
	Error   string
	Data    map[string]any
}

type CallResult struct {
	Call      Call
	Result    *Result
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the call took
func (r *CallResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
