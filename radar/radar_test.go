// ABOUTME: Tests for radar feed parsing and the TTL cache
package radar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"acme hiring" - Google News</title>
    <item>
      <title>Acme Corp expands engineering team</title>
      <link>https://news.example.com/acme-expands</link>
      <pubDate>Fri, 15 Mar 2024 12:00:00 GMT</pubDate>
      <description>Acme is &lt;b&gt;hiring&lt;/b&gt; again.</description>
      <source url="https://news.example.com">Example News</source>
    </item>
    <item>
      <title>Globex announces layoffs</title>
      <link>https://news.example.com/globex</link>
      <pubDate>Thu, 14 Mar 2024 09:00:00 GMT</pubDate>
      <description>Not great.</description>
    </item>
  </channel>
</rss>`

func TestParseFeed(t *testing.T) {
	items, err := ParseFeed([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Acme Corp expands engineering team" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Source != "Example News" {
		t.Errorf("unexpected source: %q", first.Source)
	}
	if first.Snippet != "Acme is <b>hiring</b> again." {
		t.Errorf("unexpected snippet: %q", first.Snippet)
	}

	// Missing source falls back to "Unknown".
	if items[1].Source != "Unknown" {
		t.Errorf("expected Unknown source, got %q", items[1].Source)
	}
}

func TestParseFeedCapsItems(t *testing.T) {
	feed := `<?xml version="1.0"?><rss><channel>`
	for i := 0; i < 30; i++ {
		feed += fmt.Sprintf("<item><title>item %d</title><link>https://x/%d</link></item>", i, i)
	}
	feed += `</channel></rss>`

	items, err := ParseFeed([]byte(feed))
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}
	if len(items) != 20 {
		t.Errorf("expected cap at 20 items, got %d", len(items))
	}
}

func TestParseFeedMalformed(t *testing.T) {
	if _, err := ParseFeed([]byte("this is not xml <<<")); err == nil {
		t.Error("expected error for malformed feed")
	}
}

func TestFetcherSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, sampleFeed)
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBase(srv.URL)
	items, err := fetcher.Search(context.Background(), "acme hiring")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "acme hiring" {
		t.Errorf("expected query to pass through, got %q", gotQuery)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestFetcherDefaultQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, sampleFeed)
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBase(srv.URL)
	if _, err := fetcher.Search(context.Background(), ""); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != DefaultQuery {
		t.Errorf("expected default query %q, got %q", DefaultQuery, gotQuery)
	}
}

func TestServiceUsesCache(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, sampleFeed)
	}))
	defer srv.Close()

	cache, err := OpenCache("")
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	svc := NewService(NewFetcherWithBase(srv.URL), cache)

	for i := 0; i < 3; i++ {
		items, err := svc.Search(context.Background(), "acme")
		if err != nil {
			t.Fatalf("Search %d failed: %v", i, err)
		}
		if len(items) != 2 {
			t.Fatalf("Search %d returned %d items", i, len(items))
		}
	}

	if fetches != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", fetches)
	}
}
