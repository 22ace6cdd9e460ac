package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"deepagent/internal/llm"

	openai "github.com/sashabaranov/go-openai"
)

type StreamReader struct {
	stream         *openai.ChatCompletionStream
	accumulatedMsg llm.Message
}

func (c *Client) ChatStream(ctx context.Context, req *llm.ChatRequest) (llm.StreamReader, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.buildRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("chat completion stream failed: %w", err)
	}

	return &StreamReader{
		stream: stream,
		accumulatedMsg: llm.Message{
			Role: llm.RoleAssistant,
		},
	}, nil
}

func (s *StreamReader) Recv() (*llm.Delta, error) {
	resp, err := s.stream.Recv()
	if errors.Is(err, io.EOF) {
		return &llm.Delta{Done: true}, nil
	}
	if err != nil {
		return nil, err
	}

	// Usage-only chunks carry no choices
	if len(resp.Choices) == 0 {
		return &llm.Delta{}, nil
	}

	delta := resp.Choices[0].Delta

	s.accumulatedMsg.Reason += delta.ReasoningContent
	s.accumulatedMsg.Content += delta.Content

	return &llm.Delta{
		Role:    llm.Role(delta.Role),
		Reason:  delta.ReasoningContent,
		Content: delta.Content,
	}, nil
}

func (s *StreamReader) Close() error {
	return s.stream.Close()
}

// AccumulatedMessage returns everything received so far
func (s *StreamReader) AccumulatedMessage() llm.Message {
	return s.accumulatedMsg
}
