// Package extractor provides best-effort article body extraction.
//
// Two implementations are available: Heuristic selects a content container
// with an ordered list of CSS strategies and concatenates its paragraphs,
// Readability delegates to the Mozilla Readability algorithm. Both return an
// error on network or parse failures; the orchestrator degrades errors to
// empty text.
package extractor

import (
	"crypto/tls"
	"net/http"
	"time"

	"news-digest/pkg/config"
)

// Browser-like User-Agent. Several news sites serve stripped or blocked
// pages to unknown clients.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Config holds tunables for article fetching.
type Config struct {
	// Timeout is the total budget for one article GET.
	Timeout time.Duration

	// MaxBodySize bounds the response body read, in bytes.
	MaxBodySize int64

	// UserAgent is sent on every article request.
	UserAgent string
}

// LoadConfig loads extractor configuration from environment variables.
//
// Environment variables:
//   - EXTRACTOR_TIMEOUT: per-article fetch timeout (default: 10s)
//   - EXTRACTOR_MAX_BODY_SIZE: response size cap in bytes (default: 10MB)
func LoadConfig() Config {
	return Config{
		Timeout:     config.GetEnvDuration("EXTRACTOR_TIMEOUT", 10*time.Second),
		MaxBodySize: int64(config.GetEnvInt("EXTRACTOR_MAX_BODY_SIZE", 10*1024*1024)),
		UserAgent:   config.GetEnvString("EXTRACTOR_USER_AGENT", defaultUserAgent),
	}
}

// newHTTPClient builds the HTTP client shared by both extractor
// implementations. TLS 1.2+ is enforced.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
