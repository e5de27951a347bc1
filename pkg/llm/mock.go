package llm

import "context"

// MockLLMClient is a configurable mock for testing LLM-dependent code.
// Set the function fields to control behavior in tests.
type MockLLMClient struct {
	// CreateCompletionFunc is called when CreateCompletion is invoked.
	// If nil, returns a fixed placeholder response and nil error.
	CreateCompletionFunc func(ctx context.Context, prompt string) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	CreateCompletionCalls int
	// LastPrompt records the prompt of the most recent call.
	LastPrompt string
}

// NewMockLLMClient creates a new mock with sensible defaults.
func NewMockLLMClient() *MockLLMClient {
	return &MockLLMClient{Model: "mock-model"}
}

// CreateCompletion implements LLMClient.
func (m *MockLLMClient) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	m.CreateCompletionCalls++
	m.LastPrompt = prompt
	if m.CreateCompletionFunc != nil {
		return m.CreateCompletionFunc(ctx, prompt)
	}
	return "mock response", nil
}

// GetModel implements LLMClient.
func (m *MockLLMClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}
