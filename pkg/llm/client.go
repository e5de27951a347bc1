// Package llm wraps the Anthropic messages API behind a small interface so
// the orchestrator can be tested against a mock.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/logging"
)

// Config holds configuration for creating an LLM client.
type Config struct {
	APIKey      string
	Model       string // e.g. "claude-3-haiku-20240307"
	MaxTokens   int
	Temperature float32
}

// Client calls the Anthropic messages endpoint with a fixed sampling
// configuration.
type Client struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClient creates a new Anthropic client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	return &Client{
		client:      anthropic.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      logger.Named("llm"),
	}, nil
}

// CreateCompletion sends the composed prompt as a single user message and
// returns the first text block of the response. An empty string with a nil
// error means the model returned no text block; callers substitute their
// own retry message.
func (c *Client) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	temperature := c.temperature

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	text := resp.GetFirstContentText()

	c.logger.Info("LLM request completed",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.model
}
