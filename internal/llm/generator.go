package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Generator turns one prompt into one completion
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ChatGenerator sends each prompt as a single user message to a chat Client
type ChatGenerator struct {
	client      Client
	temperature float32
	maxTokens   int
	stop        []string
	onDelta     func(string)
	lastUsage   Usage
}

// GeneratorOption configures a ChatGenerator
type GeneratorOption func(*ChatGenerator)

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) GeneratorOption {
	return func(g *ChatGenerator) { g.temperature = t }
}

// WithMaxTokens caps the completion length; zero leaves it to the provider
func WithMaxTokens(n int) GeneratorOption {
	return func(g *ChatGenerator) { g.maxTokens = n }
}

// WithStop sets stop sequences
func WithStop(stop ...string) GeneratorOption {
	return func(g *ChatGenerator) { g.stop = stop }
}

// WithStreaming switches to the streaming endpoint and hands every content
// delta to fn as it arrives. Generate still returns the full text.
func WithStreaming(fn func(string)) GeneratorOption {
	return func(g *ChatGenerator) { g.onDelta = fn }
}

func NewGenerator(client Client, opts ...GeneratorOption) *ChatGenerator {
	g := &ChatGenerator{
		client:      client,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &ChatRequest{
		Messages: []Message{{
			Role:      RoleUser,
			Content:   prompt,
			Timestamp: time.Now(),
		}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Stop:        g.stop,
	}

	if g.onDelta != nil {
		reader, err := g.client.ChatStream(ctx, req)
		if err != nil {
			return "", fmt.Errorf("failed to open stream: %w", err)
		}
		return ReadAll(ctx, reader, g.onDelta)
	}

	resp, err := g.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	g.lastUsage = resp.Usage

	return resp.Message.Content, nil
}

// LastUsage reports token usage of the most recent non-streaming call
func (g *ChatGenerator) LastUsage() Usage {
	return g.lastUsage
}

// ReadAll drains a stream and returns the accumulated content. Reasoning
// deltas are not part of the answer and are skipped. onDelta may be nil.
func ReadAll(ctx context.Context, reader StreamReader, onDelta func(string)) (string, error) {
	defer reader.Close()

	var builder strings.Builder

	for {
		if err := ctx.Err(); err != nil {
			return builder.String(), err
		}

		delta, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return builder.String(), err
		}

		if delta.Content != "" {
			builder.WriteString(delta.Content)
			if onDelta != nil {
				onDelta(delta.Content)
			}
		}

		if delta.Done {
			break
		}
	}

	return builder.String(), nil
}
