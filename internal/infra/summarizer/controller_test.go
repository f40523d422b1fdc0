package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider returns canned responses per call.
type mockProvider struct {
	responses []mockResponse
	calls     int
}

type mockResponse struct {
	text string
	err  error
}

func (m *mockProvider) Complete(_ context.Context, _ string) (string, error) {
	if m.calls >= len(m.responses) {
		return "", errors.New("unexpected extra call")
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp.text, resp.err
}

// recordingSleep records requested waits without sleeping.
type recordingSleep struct {
	waits []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordAttempt()                    {}
func (noopMetrics) RecordOutcome(bool)                {}
func (noopMetrics) RecordDuration(time.Duration)      {}
func (noopMetrics) RecordRateLimitWait(time.Duration) {}

func testControllerConfig() Config {
	return Config{
		SummaryLength:     300,
		Language:          "日本語",
		MaxInputChars:     8000,
		Retries:           3,
		BackoffBase:       5 * time.Second,
		RateLimitFallback: 60 * time.Second,
		RateLimitMargin:   1 * time.Second,
	}
}

func newTestController(provider Provider, sleep *recordingSleep) *Controller {
	return &Controller{
		provider: provider,
		config:   testControllerConfig(),
		sleep:    sleep.sleep,
		metrics:  noopMetrics{},
	}
}

func TestSummarize_EmptyInput_NoAPICall(t *testing.T) {
	provider := &mockProvider{}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	for _, input := range []string{"", "   ", "\n\t"} {
		result := c.Summarize(context.Background(), input)

		assert.False(t, result.OK())
		assert.Equal(t, "記事の本文を取得できませんでした。", result.Message())
	}
	assert.Equal(t, 0, provider.calls, "empty input must not reach the API")
	assert.Empty(t, sleep.waits)
}

func TestSummarize_SuccessFirstAttempt(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{text: "・要点1\n・要点2\n・要点3"},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	require.True(t, result.OK())
	assert.Equal(t, "・要点1\n・要点2\n・要点3", result.Text)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, sleep.waits)
}

func TestSummarize_SuccessOnSecondAttempt(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: errors.New("connection reset")},
		{text: "summary"},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	require.True(t, result.OK())
	assert.Equal(t, 2, provider.calls)
	// One intervening backoff wait of base * 2^0.
	require.Len(t, sleep.waits, 1)
	assert.Equal(t, 5*time.Second, sleep.waits[0])
}

func TestSummarize_EmptyResponsesExhaustBudget(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: &EmptyResponseError{Reason: "safety"}},
		{err: &EmptyResponseError{Reason: "safety"}},
		{err: &EmptyResponseError{Reason: "safety"}},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	assert.False(t, result.OK())
	assert.Equal(t, 3, provider.calls, "budget of 3 means exactly 3 calls")
	assert.True(t, strings.HasPrefix(result.Message(), "要約を生成できませんでした"))
	assert.Contains(t, result.Message(), "safety", "block reason is embedded in the message")
	// Exponential backoff between attempts, none after the last.
	require.Len(t, sleep.waits, 2)
	assert.Equal(t, 5*time.Second, sleep.waits[0])
	assert.Equal(t, 10*time.Second, sleep.waits[1])
}

func TestSummarize_NilErrorEmptyTextTreatedAsEmptyResponse(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{text: ""},
		{text: "recovered"},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	require.True(t, result.OK())
	assert.Equal(t, "recovered", result.Text)
	require.Len(t, sleep.waits, 1)
}

func TestSummarize_RateLimitWithSuggestedDelay(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: &RateLimitError{Message: "quota exceeded", RetryAfter: 17 * time.Second}},
		{text: "summary"},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	require.True(t, result.OK())
	require.Len(t, sleep.waits, 1)
	assert.GreaterOrEqual(t, sleep.waits[0], 18*time.Second,
		"suggested delay plus 1s margin")
}

func TestSummarize_RateLimitWithoutHintUsesFallback(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: &RateLimitError{Message: "quota exceeded"}},
		{text: "summary"},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	require.True(t, result.OK())
	require.Len(t, sleep.waits, 1)
	assert.Equal(t, 60*time.Second, sleep.waits[0])
}

func TestSummarize_GenericErrorsExhaustBudget(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: errors.New("boom 1")},
		{err: errors.New("boom 2")},
		{err: errors.New("boom 3")},
	}}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	result := c.Summarize(context.Background(), "article body text")

	assert.False(t, result.OK())
	assert.Equal(t, 3, provider.calls)
	assert.Contains(t, result.Message(), "boom 3", "last error is embedded")
}

func TestSummarize_CanceledDuringWaitFails(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{err: errors.New("transient")},
	}}
	c := &Controller{
		provider: provider,
		config:   testControllerConfig(),
		sleep: func(ctx context.Context, _ time.Duration) error {
			return context.Canceled
		},
		metrics: noopMetrics{},
	}

	result := c.Summarize(context.Background(), "article body text")

	assert.False(t, result.OK())
	assert.Equal(t, 1, provider.calls)
}

func TestSummarize_TruncatesLongInput(t *testing.T) {
	var seenPrompt string
	provider := &promptCaptureProvider{capture: &seenPrompt}
	sleep := &recordingSleep{}
	c := newTestController(provider, sleep)

	long := strings.Repeat("あ", 9000)
	result := c.Summarize(context.Background(), long)

	require.True(t, result.OK())
	assert.LessOrEqual(t, strings.Count(seenPrompt, "あ"), 8000)
}

type promptCaptureProvider struct {
	capture *string
}

func (p *promptCaptureProvider) Complete(_ context.Context, prompt string) (string, error) {
	*p.capture = prompt
	return "summary", nil
}
