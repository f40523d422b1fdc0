package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"news-digest/pkg/config"
)

// OpenAIConfig holds request parameters for the OpenAI provider.
type OpenAIConfig struct {
	// Model is the OpenAI API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature controls lexical variety. Moderate by default.
	Temperature float64

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration
}

// LoadOpenAIConfig loads OpenAI provider configuration from environment
// variables with fallback to defaults.
//
// Environment variables:
//   - OPENAI_MODEL: model identifier (default: gpt-4o-mini)
//   - SUMMARIZER_TEMPERATURE: generation temperature (default: 0.7)
func LoadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       config.GetEnvString("OPENAI_MODEL", openai.GPT4oMini),
		MaxTokens:   config.GetEnvInt("SUMMARIZER_MAX_TOKENS", 1024),
		Temperature: config.GetEnvFloat("SUMMARIZER_TEMPERATURE", 0.7),
		Timeout:     config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
	}
}

// OpenAI implements Provider using OpenAI's chat completion API.
type OpenAI struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAI creates a new OpenAI provider with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	cfg := LoadOpenAIConfig()

	slog.Info("initialized OpenAI summarization provider",
		slog.String("model", cfg.Model),
		slog.Float64("temperature", cfg.Temperature))

	return &OpenAI{
		client: openai.NewClient(apiKey),
		config: cfg,
	}
}

// Complete issues a single summarization request.
// Quota errors surface as *RateLimitError, responses without choices or
// content as *EmptyResponseError.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: float32(o.config.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &EmptyResponseError{Reason: "no choices returned"}
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &EmptyResponseError{Reason: string(resp.Choices[0].FinishReason)}
	}

	return content, nil
}

// classifyOpenAIError maps SDK errors onto the package error types.
func classifyOpenAIError(err error) error {
	var apierr *openai.APIError
	if errors.As(err, &apierr) && apierr.HTTPStatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    apierr.Message,
			RetryAfter: retryAfterHint(nil, apierr.Message),
		}
	}
	return fmt.Errorf("openai api error: %w", err)
}
