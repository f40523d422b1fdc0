package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-digest/internal/domain/entity"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sample Feed</title>
    <link>https://example.com</link>
    <item>
      <title>First article</title>
      <link>https://example.com/articles/1</link>
    </item>
    <item>
      <title>Second article</title>
      <link>https://example.com/articles/2</link>
    </item>
    <item>
      <title>Third article</title>
      <link>https://example.com/articles/3</link>
    </item>
  </channel>
</rss>`

func TestRSSFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	fetcher := NewRSSFetcher(srv.Client())
	entries, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)

	// Native feed order is preserved.
	want := []entity.Entry{
		{Title: "First article", Link: "https://example.com/articles/1"},
		{Title: "Second article", Link: "https://example.com/articles/2"},
		{Title: "Third article", Link: "https://example.com/articles/3"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRSSFetcher_Fetch_InvalidFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	fetcher := NewRSSFetcher(srv.Client())
	entries, err := fetcher.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestRSSFetcher_Fetch_EmptyFeed(t *testing.T) {
	const emptyRSS = `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(emptyRSS))
	}))
	defer srv.Close()

	fetcher := NewRSSFetcher(srv.Client())
	entries, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, entries)
}
