// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content.
package scraper

import (
	"context"
	"net/http"

	"github.com/mmcdole/gofeed"

	"news-digest/internal/domain/entity"
	"news-digest/internal/resilience/retry"
)

// RSSFetcher implements digest.FeedFetcher using the gofeed library.
// Transient network failures are retried with exponential backoff before
// the caller degrades the feed to zero entries.
type RSSFetcher struct {
	client      *http.Client
	retryConfig retry.Config
	userAgent   string
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:      client,
		retryConfig: retry.FeedFetchConfig(),
		userAgent:   "NewsDigestBot/1.0",
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Entries are returned in the feed's native order.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]entity.Entry, error) {
	var entries []entity.Entry

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		parsed, err := f.doFetch(ctx, feedURL)
		if err != nil {
			return err
		}
		entries = parsed
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return entries, nil
}

// doFetch performs the actual feed fetch without retry.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]entity.Entry, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.Entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		entries = append(entries, entity.Entry{
			Title: it.Title,
			Link:  it.Link,
		})
	}

	return entries, nil
}
