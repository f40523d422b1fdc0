// Package digest implements the digest pipeline use case: iterate the
// configured feeds, extract and summarize each entry, assemble the HTML
// digest, and hand it to the mailer. The pipeline is deliberately sequential;
// the only resource discipline is pacing between entries to stay under the
// summarization API's request quota.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"news-digest/internal/domain/entity"
)

// FeedFetcher fetches and parses a feed, returning entries in native order.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]entity.Entry, error)
}

// ArticleExtractor retrieves the plain text body of an article.
// The orchestrator degrades any error to empty text.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Summarizer produces a bounded bullet summary of article text.
// It always returns a terminal Result, never an error.
type Summarizer interface {
	Summarize(ctx context.Context, articleText string) Result
}

// Mailer dispatches the rendered digest.
type Mailer interface {
	Send(ctx context.Context, html string) error
}

// Pacer blocks until the next outbound request is allowed.
// *rate.Limiter satisfies this interface.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Service orchestrates one digest run.
type Service struct {
	Feeds          []entity.FeedSource
	FeedFetcher    FeedFetcher
	Extractor      ArticleExtractor
	Summarizer     Summarizer
	Mailer         Mailer
	Pacer          Pacer
	EntriesPerFeed int

	// Clock overrides time.Now for tests. Nil means real time.
	Clock func() time.Time
}

// NewService creates a digest Service with the provided dependencies.
func NewService(
	feeds []entity.FeedSource,
	feedFetcher FeedFetcher,
	extractor ArticleExtractor,
	summarizer Summarizer,
	mailer Mailer,
	pacer Pacer,
	entriesPerFeed int,
) Service {
	return Service{
		Feeds:          feeds,
		FeedFetcher:    feedFetcher,
		Extractor:      extractor,
		Summarizer:     summarizer,
		Mailer:         mailer,
		Pacer:          pacer,
		EntriesPerFeed: entriesPerFeed,
	}
}

// RunStats contains statistics about one digest run.
type RunStats struct {
	Feeds           int
	Entries         int
	ExtractFailures int
	SummaryFailures int
	Dispatched      bool
	Duration        time.Duration
}

// Run executes one digest run: for each configured feed, in order, it parses
// the feed, processes the first EntriesPerFeed entries (extract, summarize,
// record), then assembles and dispatches the digest if at least one record
// was produced.
//
// Failure handling follows the degrade-and-continue policy: feed fetch and
// extraction failures are logged and yield empty results, summarization
// failures surface as failure-message records. The only returned errors are
// context cancellation during pacing.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	logger := slog.Default()
	start := time.Now()
	stats := &RunStats{Feeds: len(s.Feeds)}

	var records []entity.DigestRecord
	for _, src := range s.Feeds {
		logger.Info("fetching feed",
			slog.String("source", src.Name),
			slog.String("url", src.URL))

		entries, err := s.FeedFetcher.Fetch(ctx, src.URL)
		if err != nil {
			logger.Warn("failed to fetch feed, skipping source",
				slog.String("source", src.Name),
				slog.String("url", src.URL),
				slog.Any("error", err))
			continue
		}

		if len(entries) > s.EntriesPerFeed {
			entries = entries[:s.EntriesPerFeed]
		}

		for _, entry := range entries {
			// Pace outbound summarization requests to stay under the
			// per-minute quota.
			if err := s.Pacer.Wait(ctx); err != nil {
				return stats, fmt.Errorf("pacing interrupted: %w", err)
			}

			logger.Info("processing entry",
				slog.String("source", src.Name),
				slog.String("title", entry.Title),
				slog.String("link", entry.Link))
			stats.Entries++

			articleText := s.extract(ctx, entry.Link)
			if articleText == "" {
				stats.ExtractFailures++
			}

			result := s.Summarizer.Summarize(ctx, articleText)
			if !result.OK() {
				stats.SummaryFailures++
				logger.Warn("summarization degraded to failure message",
					slog.String("source", src.Name),
					slog.String("link", entry.Link),
					slog.String("reason", result.Reason))
			}

			records = append(records, entity.DigestRecord{
				Source:  src.Name,
				Title:   entry.Title,
				Link:    entry.Link,
				Summary: result.Message(),
			})
		}
	}

	if len(records) == 0 {
		logger.Info("no entries to summarize, skipping digest dispatch")
	} else {
		logger.Info("assembling digest", slog.Int("records", len(records)))
		html := Assemble(records, s.now())

		if err := s.Mailer.Send(ctx, html); err != nil {
			logger.Warn("digest dispatch failed", slog.Any("error", err))
		} else {
			stats.Dispatched = true
		}
	}

	stats.Duration = time.Since(start)
	logger.Info("digest run completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int("entries", stats.Entries),
		slog.Int("extract_failures", stats.ExtractFailures),
		slog.Int("summary_failures", stats.SummaryFailures),
		slog.Bool("dispatched", stats.Dispatched),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// extract fetches the article body, degrading any failure to empty text.
// It never returns an error; extraction problems are logged and the
// summarizer's empty-input path produces the user-facing message.
func (s *Service) extract(ctx context.Context, url string) string {
	articleText, err := s.Extractor.Extract(ctx, url)
	if err != nil {
		slog.Warn("article extraction failed, using empty body",
			slog.String("url", url),
			slog.Any("error", err))
		return ""
	}
	return articleText
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
