package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"news-digest/pkg/config"
)

// ClaudeConfig holds request parameters for the Claude provider.
type ClaudeConfig struct {
	// Model is the Claude API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature controls lexical variety. Moderate by default.
	Temperature float64

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration
}

// LoadClaudeConfig loads Claude provider configuration from environment
// variables with fallback to defaults.
//
// Environment variables:
//   - CLAUDE_MODEL: model identifier (default: claude-sonnet-4-5)
//   - SUMMARIZER_TEMPERATURE: generation temperature (default: 0.7)
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:       config.GetEnvString("CLAUDE_MODEL", string(anthropic.ModelClaudeSonnet4_5_20250929)),
		MaxTokens:   config.GetEnvInt("SUMMARIZER_MAX_TOKENS", 1024),
		Temperature: config.GetEnvFloat("SUMMARIZER_TEMPERATURE", 0.7),
		Timeout:     config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
	}
}

// Claude implements Provider using Anthropic's Claude API.
type Claude struct {
	client anthropic.Client
	config ClaudeConfig
}

// NewClaude creates a new Claude provider with the given API key.
func NewClaude(apiKey string) *Claude {
	cfg := LoadClaudeConfig()

	slog.Info("initialized Claude summarization provider",
		slog.String("model", cfg.Model),
		slog.Float64("temperature", cfg.Temperature))

	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		config: cfg,
	}
}

// Complete issues a single summarization request.
// Quota errors surface as *RateLimitError, responses without content parts
// as *EmptyResponseError.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(c.config.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", classifyClaudeError(err)
	}

	if len(message.Content) == 0 {
		return "", &EmptyResponseError{Reason: string(message.StopReason)}
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", &EmptyResponseError{Reason: "unexpected content block type"}
	}
	if textBlock.Text == "" {
		return "", &EmptyResponseError{Reason: string(message.StopReason)}
	}

	return textBlock.Text, nil
}

// classifyClaudeError maps SDK errors onto the package error types.
func classifyClaudeError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    apierr.Error(),
			RetryAfter: retryAfterHint(apierr.Response, apierr.Error()),
		}
	}
	return fmt.Errorf("claude api error: %w", err)
}
