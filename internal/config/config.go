// Package config assembles the application-level run configuration: the feed
// list and the pipeline pacing parameters.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"news-digest/internal/domain/entity"
	pkgconfig "news-digest/pkg/config"
)

// Config is the run configuration for one digest execution.
type Config struct {
	// Feeds lists the sources to collect, in digest order.
	Feeds []entity.FeedSource

	// EntriesPerFeed caps how many entries of each feed are processed.
	EntriesPerFeed int

	// PacingInterval is the minimum spacing between summarization requests.
	PacingInterval time.Duration
}

// defaultFeeds is the built-in source list used when no feeds file is given.
func defaultFeeds() []entity.FeedSource {
	return []entity.FeedSource{
		{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
		{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
	}
}

// Load builds the run configuration from environment variables.
//
// Environment variables:
//   - FEEDS_FILE: optional path to a YAML feed list (default: built-in feeds)
//   - MAX_ENTRIES_PER_FEED: entries processed per feed (default: 3)
//   - PACING_INTERVAL: spacing between summarization requests (default: 31s)
//
// A missing or malformed feeds file falls back to the built-in list with a
// warning rather than aborting the run.
func Load() Config {
	cfg := Config{
		Feeds:          defaultFeeds(),
		EntriesPerFeed: pkgconfig.GetEnvInt("MAX_ENTRIES_PER_FEED", 3),
		PacingInterval: pkgconfig.GetEnvDuration("PACING_INTERVAL", 31*time.Second),
	}

	if cfg.EntriesPerFeed < 1 {
		slog.Warn("invalid MAX_ENTRIES_PER_FEED, using default",
			slog.Int("value", cfg.EntriesPerFeed),
			slog.Int("default", 3))
		cfg.EntriesPerFeed = 3
	}
	if cfg.PacingInterval < 0 {
		slog.Warn("negative PACING_INTERVAL, using default",
			slog.Duration("value", cfg.PacingInterval),
			slog.Duration("default", 31*time.Second))
		cfg.PacingInterval = 31 * time.Second
	}

	if path := os.Getenv("FEEDS_FILE"); path != "" {
		feeds, err := loadFeedsFile(path)
		if err != nil {
			slog.Warn("failed to load feeds file, using built-in feeds",
				slog.String("path", path),
				slog.Any("error", err))
		} else {
			cfg.Feeds = feeds
		}
	}

	return cfg
}

// loadFeedsFile reads a YAML feed list of the form:
//
//	feeds:
//	  - name: Hacker News
//	    url: https://news.ycombinator.com/rss
func loadFeedsFile(path string) ([]entity.FeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	var doc struct {
		Feeds []entity.FeedSource `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feeds file: %w", err)
	}
	if len(doc.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %q contains no feeds", path)
	}

	for _, src := range doc.Feeds {
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("feeds file %q: %w", path, err)
		}
	}
	return doc.Feeds, nil
}
