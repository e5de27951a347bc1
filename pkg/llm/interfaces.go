package llm

import "context"

// LLMClient defines the completion operations the orchestrator depends on.
// Use this interface for dependency injection to enable mocking in tests.
type LLMClient interface {
	// CreateCompletion sends a prompt and returns the first text block.
	CreateCompletion(ctx context.Context, prompt string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure Client implements LLMClient at compile time.
var _ LLMClient = (*Client)(nil)
