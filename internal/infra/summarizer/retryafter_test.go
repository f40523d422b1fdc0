package summarizer

import (
	"net/http"
	"testing"
	"time"
)

func TestRetryAfterHint(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		detail   string
		expected time.Duration
	}{
		{"header wins", "30", "retry after 17s", 30 * time.Second},
		{"detail retry after", "", "rate limit exceeded, retry after 17s", 17 * time.Second},
		{"detail retry_delay", "", "quota exhausted, retry_delay: 42s", 42 * time.Second},
		{"detail retry in", "", "Please retry in 12 s", 12 * time.Second},
		{"fractional seconds", "", "retry after 2.5s", 2500 * time.Millisecond},
		{"no hint", "", "internal error", 0},
		{"invalid header ignored", "soon", "retry after 9s", 9 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			if tt.header != "" || tt.name == "invalid header ignored" {
				resp = &http.Response{Header: http.Header{}}
				if tt.header != "" {
					resp.Header.Set("Retry-After", tt.header)
				}
			}
			if got := retryAfterHint(resp, tt.detail); got != tt.expected {
				t.Errorf("retryAfterHint() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
