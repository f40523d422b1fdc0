// Package entity defines the value types flowing through the digest pipeline.
package entity

import (
	"errors"
	"fmt"
	"net/url"
)

// FeedSource is a configured news feed: a display name and a feed URL.
// Sources are static configuration, built once at startup and never mutated.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Validate checks that the source has a name and a usable http(s) feed URL.
func (s FeedSource) Validate() error {
	if s.Name == "" {
		return errors.New("feed source name is empty")
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("invalid feed url %q: %w", s.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("feed url %q must use http or https", s.URL)
	}
	return nil
}

// Entry is one item of a parsed feed, in the feed's native order.
type Entry struct {
	Title string
	Link  string
}

// DigestRecord is one processed entry ready for assembly into the digest.
// Summary is always populated: a generated summary on success, or a
// user-facing failure message when extraction or summarization degraded.
type DigestRecord struct {
	Source  string
	Title   string
	Link    string
	Summary string
}
