package agent

import (
	"context"
	"time"

	"deepagent/internal/logger"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// LoggerContextKey is the context key for storing the logger
const LoggerContextKey ContextKey = "logger"

// ExecutionContext tracks the state of one run and provides logging utilities
type ExecutionContext struct {
	RunID       string
	Logger      *logger.Logger
	StartTime   time.Time
	SearchCount int
}

// NewExecutionContext creates a new execution context with the given logger
func NewExecutionContext(runID string, log *logger.Logger) *ExecutionContext {
	if log == nil {
		log = logger.Discard()
	}
	return &ExecutionContext{
		RunID:     runID,
		Logger:    log,
		StartTime: time.Now(),
	}
}

// LogToolCall logs a tool call with its argument
func (ctx *ExecutionContext) LogToolCall(toolName, argument string) {
	ctx.SearchCount++
	ctx.Logger.ToolCall(toolName, argument)
}

// LogToolResult logs a tool execution result
func (ctx *ExecutionContext) LogToolResult(toolName string, success bool, output string, duration time.Duration) {
	ctx.Logger.ToolResult(toolName, success, output, duration)
}

// LogPrompt logs a prompt before it is sent to the model
func (ctx *ExecutionContext) LogPrompt(stage, prompt string) {
	ctx.Logger.Prompt(stage, prompt)
}

// LogModelOutput logs raw model output
func (ctx *ExecutionContext) LogModelOutput(stage, output string) {
	ctx.Logger.ModelOutput(stage, output)
}

// LogResponse logs the agent's final response
func (ctx *ExecutionContext) LogResponse(content string) {
	ctx.Logger.AgentResponse(content)
}

// End logs the session summary
func (ctx *ExecutionContext) End() {
	ctx.Logger.SessionEnd(time.Since(ctx.StartTime), ctx.SearchCount)
}

// GetLoggerFromContext retrieves the logger stored in context
func GetLoggerFromContext(ctx context.Context) *logger.Logger {
	if log, ok := ctx.Value(LoggerContextKey).(*logger.Logger); ok {
		return log
	}
	return nil
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, log *logger.Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, log)
}
