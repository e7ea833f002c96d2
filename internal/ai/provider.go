package ai

import "context"

// Request is a single completion call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	JSON        bool // ask the provider for a JSON document
	// Schema describes the reply for providers that enforce structured
	// output, in the OpenAPI subset Gemini accepts. Others ignore it.
	Schema      map[string]any
	MaxTokens   int
	Temperature float64
}

type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
