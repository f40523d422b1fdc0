package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// containerStrategies are the content-container selectors, tried in order.
// First match wins.
var containerStrategies = []string{"article", "main", "body"}

// nonContentSelector matches subtrees removed before paragraph extraction.
const nonContentSelector = "script, style, nav, header, footer, aside, form"

// Heuristic extracts article text by selecting the primary content
// container, removing non-content subtrees, and concatenating the text of
// the remaining paragraph elements.
type Heuristic struct {
	client *http.Client
	config Config
}

// NewHeuristic creates a Heuristic extractor with the given configuration.
func NewHeuristic(cfg Config) *Heuristic {
	return &Heuristic{
		client: newHTTPClient(cfg.Timeout),
		config: cfg,
	}
}

// Extract fetches the URL and returns the best-effort plain text of the
// article body. A missing content container yields empty text with no error;
// network and HTTP failures return an error for the caller to degrade.
func (h *Heuristic) Extract(ctx context.Context, url string) (string, error) {
	body, err := h.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse article html: %w", err)
	}

	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument applies the container strategies to an already parsed
// document. Exposed separately so the selection heuristics are testable with
// fixed HTML fixtures.
func ExtractFromDocument(doc *goquery.Document) string {
	container := firstMatch(doc, containerStrategies)
	if container == nil {
		return ""
	}

	container.Find(nonContentSelector).Remove()

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		paragraphs = append(paragraphs, p.Text())
	})

	return strings.TrimSpace(strings.Join(paragraphs, " "))
}

// firstMatch returns the first selection any strategy matches, or nil.
func firstMatch(doc *goquery.Document, strategies []string) *goquery.Selection {
	for _, strategy := range strategies {
		if sel := doc.Find(strategy).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// fetch performs the article GET with the configured User-Agent, size cap,
// and timeout. Non-2xx responses are failures.
func (h *Heuristic) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create article request: %w", err)
	}
	req.Header.Set("User-Agent", h.config.UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("article fetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.config.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read article body: %w", err)
	}

	return body, nil
}
