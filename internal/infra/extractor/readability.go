package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-shiori/go-readability"
)

// Readability extracts article text using the Mozilla Readability algorithm.
// It handles pages whose content lives outside article/main containers
// better than the selector heuristics, at the cost of heavier parsing.
type Readability struct {
	client *http.Client
	config Config
}

// NewReadability creates a Readability extractor with the given configuration.
func NewReadability(cfg Config) *Readability {
	return &Readability{
		client: newHTTPClient(cfg.Timeout),
		config: cfg,
	}
}

// Extract fetches the URL and returns the readable article text.
// Pages with no readable content yield empty text with no error.
func (r *Readability) Extract(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create article request: %w", err)
	}
	req.Header.Set("User-Agent", r.config.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("article fetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.config.MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("read article body: %w", err)
	}

	// Prefer the final URL after redirects as the base for relative links.
	pageURL, _ := url.Parse(rawURL)
	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}

	return article.TextContent, nil
}
