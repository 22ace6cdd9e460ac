package llm

import "context"

type Client interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ChatStream(ctx context.Context, req *ChatRequest) (StreamReader, error)
	Provider() string
	Model() string
}

type ChatRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// Stop lists sequences that end generation early
	Stop []string
}

type ChatResponse struct {
	Message    Message
	StopReason StopReason
	Usage      Usage
}

type StreamReader interface {
	Recv() (*Delta, error)
	Close() error
}

type Delta struct {
	Role    Role
	Reason  string
	Content string
	Done    bool
}
