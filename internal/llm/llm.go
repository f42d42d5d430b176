package llm

import (
	"context"

	"transcript-agents/internal/schema"
)

// Request describes a single chat completion. When Schema is set the
// backend is asked for structured output conforming to it.
type Request struct {
	System      string
	Prompt      string
	SchemaName  string
	Schema      schema.Schema
	Temperature float64
	MaxTokens   int
}

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Answer(ctx context.Context, question, contextText string) (string, float32, error)
}
