package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"news-digest/internal/usecase/digest"
	"news-digest/internal/utils/text"
)

// emptyBodyMessage is returned without any API call when the article body
// could not be retrieved.
const emptyBodyMessage = "記事の本文を取得できませんでした。"

// exhaustedMessage is the terminal failure message once the retry budget is
// spent. The last failure reason is embedded for the reader.
func exhaustedMessage(reason string) string {
	return fmt.Sprintf("要約を生成できませんでした（リトライ上限に到達）: %s", reason)
}

// SleepFunc pauses for d, returning early with the context's error when it
// is canceled. Injected so tests observe waits without real time passing.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Controller drives a Provider through the bounded retry/backoff policy and
// always yields a terminal digest.Result: a genuine summary, or a user-facing
// failure message once the budget is spent. It never returns an error.
//
// Per attempt i (zero-based), failures are classified:
//   - rate limit: wait the server-suggested delay plus a margin, or the
//     configured fallback when no hint exists, then move to the next attempt
//   - empty/blocked response or generic transient error: wait
//     BackoffBase * 2^i, then move to the next attempt
type Controller struct {
	provider Provider
	config   Config
	sleep    SleepFunc
	metrics  SummaryMetricsRecorder
}

// NewController creates a Controller over the given provider.
func NewController(provider Provider, cfg Config) *Controller {
	return &Controller{
		provider: provider,
		config:   cfg,
		sleep:    defaultSleep,
		metrics:  NewPrometheusSummaryMetrics(),
	}
}

// Summarize produces a bullet summary of the article text.
//
// Empty input short-circuits to a fixed message with no API call. Input is
// truncated to MaxInputChars before being sent. The retry loop issues at most
// Retries requests; context cancellation during a wait also terminates the
// loop with a failure result.
func (c *Controller) Summarize(ctx context.Context, articleText string) digest.Result {
	if strings.TrimSpace(articleText) == "" {
		slog.Info("article body empty, skipping summarization")
		return digest.FailedResult(emptyBodyMessage)
	}

	requestID := uuid.New().String()
	input := text.TruncateRunes(articleText, c.config.MaxInputChars)
	if len(input) != len(articleText) {
		slog.Debug("article text truncated for summarization",
			slog.String("request_id", requestID),
			slog.Int("original_length", text.CountRunes(articleText)),
			slog.Int("truncated_length", text.CountRunes(input)))
	}
	prompt := c.buildPrompt(input)

	var lastErr error
	for attempt := 0; attempt < c.config.Retries; attempt++ {
		start := time.Now()
		summary, err := c.provider.Complete(ctx, prompt)
		duration := time.Since(start)
		c.metrics.RecordAttempt()
		c.metrics.RecordDuration(duration)

		if err == nil && summary != "" {
			slog.Info("summarization completed",
				slog.String("request_id", requestID),
				slog.Int("attempt", attempt+1),
				slog.Int("summary_length", text.CountRunes(summary)),
				slog.Duration("duration", duration))
			c.metrics.RecordOutcome(true)
			return digest.OKResult(summary)
		}

		// A nil error with no content is the same condition as a reported
		// empty response.
		if err == nil {
			err = &EmptyResponseError{}
		}
		lastErr = err

		lastAttempt := attempt == c.config.Retries-1
		if lastAttempt {
			break
		}

		wait, kind := c.classifyWait(err, attempt)
		slog.Warn("summarization attempt failed, waiting before retry",
			slog.String("request_id", requestID),
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", c.config.Retries),
			slog.String("failure", kind),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		if kind == "rate_limit" {
			c.metrics.RecordRateLimitWait(wait)
		}

		if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
			c.metrics.RecordOutcome(false)
			return digest.FailedResult(exhaustedMessage(sleepErr.Error()))
		}
	}

	slog.Error("summarization failed, retry budget exhausted",
		slog.String("request_id", requestID),
		slog.Int("attempts", c.config.Retries),
		slog.Any("error", lastErr))
	c.metrics.RecordOutcome(false)
	return digest.FailedResult(exhaustedMessage(lastErr.Error()))
}

// classifyWait returns the wait before the next attempt and the failure kind
// for logging. Rate-limit failures wait the server-suggested delay plus a
// margin (or the fallback); everything else backs off exponentially.
func (c *Controller) classifyWait(err error, attempt int) (time.Duration, string) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			return rl.RetryAfter + c.config.RateLimitMargin, "rate_limit"
		}
		return c.config.RateLimitFallback, "rate_limit"
	}

	var empty *EmptyResponseError
	kind := "transient_error"
	if errors.As(err, &empty) {
		kind = "empty_response"
	}
	return c.config.BackoffBase * (1 << attempt), kind
}

// buildPrompt constructs the summarization prompt: a bullet summary in the
// target language, around the target length, limited to three key points.
func (c *Controller) buildPrompt(input string) string {
	return fmt.Sprintf(
		"以下のニュース記事を%sで%d字程度の箇条書きで要約してください。重要なポイントを3つに絞ってください。\n\n---\n%s",
		c.config.Language, c.config.SummaryLength, input)
}
