package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

type Item struct {
	URL         string
	Title       string
	Author      string
	PublishedAt time.Time
	Content     string
	ImageURLs   []string
}

type Fetcher struct {
	parser    *gofeed.Parser
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Fetcher{
		parser:    parser,
		client:    &http.Client{Timeout: timeout},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

func (f *Fetcher) Fetch(feedURL string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var items []Item
	for _, entry := range feed.Items {
		item := Item{
			URL:   entry.Link,
			Title: entry.Title,
		}

		if entry.Author != nil {
			item.Author = entry.Author.Name
		} else if len(feed.Authors) > 0 {
			item.Author = feed.Authors[0].Name
		}

		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			item.PublishedAt = *entry.UpdatedParsed
		} else {
			item.PublishedAt = time.Now()
		}

		if entry.Content != "" {
			item.Content = entry.Content
		} else {
			item.Content = entry.Description
		}

		item.ImageURLs = itemImages(entry)
		items = append(items, item)
	}

	return items, nil
}

// itemImages collects the entry's cover image and any image enclosures.
func itemImages(entry *gofeed.Item) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	if entry.Image != nil {
		add(entry.Image.URL)
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			add(enc.URL)
		}
	}
	return urls
}
