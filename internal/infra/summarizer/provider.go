// Package summarizer provides AI-powered article summarization.
//
// A Provider issues a single completion request against one generative-text
// API (Claude, OpenAI); the Controller drives providers through the bounded
// retry/backoff policy and turns the outcome into a terminal digest.Result.
package summarizer

import "context"

// Provider executes a single summarization request.
//
// Implementations map transport/SDK failures onto the package error types:
// *RateLimitError for quota exhaustion (with the server-suggested delay when
// available) and *EmptyResponseError for structurally valid responses with
// no usable content. Any other error is treated as a generic transient
// failure by the Controller.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
