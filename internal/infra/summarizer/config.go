package summarizer

import (
	"fmt"
	"log/slog"
	"time"

	"news-digest/pkg/config"
)

const (
	minSummaryLength = 100
	maxSummaryLength = 5000
)

// Config holds the Controller's prompt and retry policy parameters.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// SummaryLength is the target summary length in characters.
	SummaryLength int

	// Language is the target language for summaries.
	Language string

	// MaxInputChars bounds the article text sent per request.
	MaxInputChars int

	// Retries is the attempt budget per article.
	Retries int

	// BackoffBase is the base delay for exponential backoff between attempts.
	BackoffBase time.Duration

	// RateLimitFallback is the wait applied when the server signals rate
	// limiting without suggesting a delay.
	RateLimitFallback time.Duration

	// RateLimitMargin is added on top of a server-suggested delay.
	RateLimitMargin time.Duration
}

// LoadConfig loads Controller configuration from environment variables.
// Out-of-range summary lengths fall back to the default with a warning.
//
// Environment variables:
//   - SUMMARY_LENGTH: target summary length in characters (default: 300, range: 100-5000)
//   - SUMMARIZER_MAX_INPUT_CHARS: input truncation bound (default: 8000)
//   - SUMMARIZER_RETRIES: attempt budget per article (default: 3)
//   - SUMMARIZER_BACKOFF_BASE: exponential backoff base (default: 5s)
//   - SUMMARIZER_RATE_LIMIT_FALLBACK: wait when no delay hint exists (default: 60s)
func LoadConfig() Config {
	cfg := Config{
		SummaryLength:     config.GetEnvInt("SUMMARY_LENGTH", 300),
		Language:          "日本語",
		MaxInputChars:     config.GetEnvInt("SUMMARIZER_MAX_INPUT_CHARS", 8000),
		Retries:           config.GetEnvInt("SUMMARIZER_RETRIES", 3),
		BackoffBase:       config.GetEnvDuration("SUMMARIZER_BACKOFF_BASE", 5*time.Second),
		RateLimitFallback: config.GetEnvDuration("SUMMARIZER_RATE_LIMIT_FALLBACK", 60*time.Second),
		RateLimitMargin:   1 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		fallback := Config{
			SummaryLength:     300,
			Language:          "日本語",
			MaxInputChars:     8000,
			Retries:           3,
			BackoffBase:       5 * time.Second,
			RateLimitFallback: 60 * time.Second,
			RateLimitMargin:   1 * time.Second,
		}
		logInvalidConfig(cfg, err)
		return fallback
	}

	return cfg
}

func logInvalidConfig(cfg Config, err error) {
	slog.Warn("invalid summarizer configuration, using defaults",
		slog.Int("summary_length", cfg.SummaryLength),
		slog.Int("retries", cfg.Retries),
		slog.Duration("backoff_base", cfg.BackoffBase),
		slog.String("error", err.Error()))
}

// Validate checks the configuration fields.
func (c Config) Validate() error {
	if c.SummaryLength < minSummaryLength || c.SummaryLength > maxSummaryLength {
		return fmt.Errorf("summary length %d outside valid range %d-%d",
			c.SummaryLength, minSummaryLength, maxSummaryLength)
	}
	if c.MaxInputChars <= 0 {
		return fmt.Errorf("max input chars must be positive, got %d", c.MaxInputChars)
	}
	if c.Retries <= 0 {
		return fmt.Errorf("retries must be positive, got %d", c.Retries)
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("backoff base must be positive, got %v", c.BackoffBase)
	}
	if c.RateLimitFallback <= 0 {
		return fmt.Errorf("rate limit fallback must be positive, got %v", c.RateLimitFallback)
	}
	return nil
}
