package summarizer

import (
	"context"

	"news-digest/internal/utils/text"
)

// NoOp is a provider that echoes the prompt tail without calling any API.
// This is useful for testing and local development when summarization is
// not needed.
type NoOp struct{}

// NewNoOp creates a new NoOp provider.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Complete returns the prompt truncated to a summary-sized length.
func (n *NoOp) Complete(_ context.Context, prompt string) (string, error) {
	const maxLength = 300
	if text.CountRunes(prompt) <= maxLength {
		return prompt, nil
	}
	return text.TruncateRunes(prompt, maxLength) + "...", nil
}
