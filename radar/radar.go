// ABOUTME: News radar for lead discovery via Google News RSS
// ABOUTME: Fetches and parses search results into plain news items
package radar

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultQuery is the search run when the caller supplies none.
const DefaultQuery = "H-1B sponsor hiring"

const (
	defaultBaseURL = "https://news.google.com/rss/search"
	maxItems       = 20
	fetchTimeout   = 15 * time.Second
)

type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Published string `json:"published"`
	Snippet   string `json:"snippet"`
}

// rss mirrors the subset of the feed the radar cares about.
type rss struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Source      struct {
		Name string `xml:",chardata"`
	} `xml:"source"`
}

type Fetcher struct {
	client  *http.Client
	baseURL string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: defaultBaseURL,
	}
}

// NewFetcherWithBase overrides the feed endpoint, used in tests.
func NewFetcherWithBase(baseURL string) *Fetcher {
	f := NewFetcher()
	f.baseURL = baseURL
	return f
}

// Search runs a news search and returns up to twenty items. Snippets are
// passed through as the feed serves them; rendering is plain text.
func (f *Fetcher) Search(ctx context.Context, query string) ([]NewsItem, error) {
	if query == "" {
		query = DefaultQuery
	}

	feedURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", f.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build radar request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("radar fetch failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("radar feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read radar feed: %w", err)
	}

	return ParseFeed(body)
}

// ParseFeed decodes an RSS payload into news items, capped at maxItems.
func ParseFeed(body []byte) ([]NewsItem, error) {
	var feed rss
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse radar feed: %w", err)
	}

	items := []NewsItem{}
	for _, entry := range feed.Channel.Items {
		if len(items) >= maxItems {
			break
		}
		source := entry.Source.Name
		if source == "" {
			source = "Unknown"
		}
		items = append(items, NewsItem{
			Title:     entry.Title,
			Link:      entry.Link,
			Source:    source,
			Published: entry.PubDate,
			Snippet:   entry.Description,
		})
	}
	return items, nil
}
