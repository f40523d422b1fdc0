package summarizer

import (
	"fmt"
	"time"
)

// RateLimitError signals that the provider rejected the request because the
// request quota is exhausted. RetryAfter carries the server-suggested wait
// when the provider exposed one; zero means no hint was given.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: %s (retry after %s)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited: %s", e.Message)
}

// EmptyResponseError signals a structurally valid response that carried no
// content parts, typically a blocked or refused generation. Reason holds the
// block/finish reason when the provider reported one.
type EmptyResponseError struct {
	Reason string
}

// Error implements the error interface.
func (e *EmptyResponseError) Error() string {
	if e.Reason == "" {
		return "empty response: no content parts returned"
	}
	return fmt.Sprintf("empty response: %s", e.Reason)
}
