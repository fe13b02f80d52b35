package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

const rssDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Blog</title>
<link>https://test.com</link>
<item>
<title>First Post</title>
<link>https://test.com/first</link>
<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
<description>&lt;p&gt;Hello &lt;img src="https://cdn.test.com/inline.png"&gt;&lt;/p&gt;</description>
<enclosure url="https://cdn.test.com/cover.jpg" length="1234" type="image/jpeg"/>
<enclosure url="https://cdn.test.com/audio.mp3" length="5678" type="audio/mpeg"/>
</item>
</channel>
</rss>`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssDoc))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "thumbfix-test")

	items, err := fetcher.Fetch(server.URL)
	if err != nil {
		t.Fatalf("failed to fetch feed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Title != "First Post" {
		t.Errorf("expected title First Post, got %s", item.Title)
	}
	if item.URL != "https://test.com/first" {
		t.Errorf("unexpected url: %s", item.URL)
	}
	if item.Content == "" {
		t.Error("expected content from description")
	}
	if len(item.ImageURLs) != 1 || item.ImageURLs[0] != "https://cdn.test.com/cover.jpg" {
		t.Errorf("unexpected image urls: %v", item.ImageURLs)
	}
}

func TestItemImages(t *testing.T) {
	entry := &gofeed.Item{
		Image: &gofeed.Image{URL: "https://cdn.test.com/cover.jpg"},
		Enclosures: []*gofeed.Enclosure{
			{URL: "https://cdn.test.com/cover.jpg", Type: "image/jpeg"},
			{URL: "https://cdn.test.com/extra.png", Type: "image/png"},
			{URL: "https://cdn.test.com/audio.mp3", Type: "audio/mpeg"},
		},
	}

	urls := itemImages(entry)
	want := []string{"https://cdn.test.com/cover.jpg", "https://cdn.test.com/extra.png"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i, u := range want {
		if urls[i] != u {
			t.Errorf("expected %s at %d, got %s", u, i, urls[i])
		}
	}
}

func TestDiscoverFromLinkTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><link rel="alternate" type="application/rss+xml" href="https://test.com/custom.xml"></head></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "")

	feedURL, err := fetcher.Discover(server.URL)
	if err != nil {
		t.Fatalf("failed to discover feed: %v", err)
	}
	if feedURL != "https://test.com/custom.xml" {
		t.Errorf("unexpected feed url: %s", feedURL)
	}
}

func TestDiscoverFallbackPaths(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no feed links here</body></html>"))
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "")

	feedURL, err := fetcher.Discover(server.URL)
	if err != nil {
		t.Fatalf("failed to discover feed: %v", err)
	}
	if feedURL != server.URL+"/feed" {
		t.Errorf("unexpected feed url: %s", feedURL)
	}
}
