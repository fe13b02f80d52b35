// internal/feed/discover.go
package feed

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

var feedPatterns = []string{
	"/feed",
	"/feed.xml",
	"/atom.xml",
	"/rss.xml",
	"/rss",
	"/index.xml",
}

var linkRegex = regexp.MustCompile(`<link[^>]+type=["'](application/(rss|atom)\+xml)["'][^>]*href=["']([^"']+)["']`)

// Discover finds the feed URL for a site by checking its link tags,
// then falling back to common feed paths.
func (f *Fetcher) Discover(siteURL string) (string, error) {
	// Try to find a feed link in the HTML
	if body, err := f.get(siteURL); err == nil {
		matches := linkRegex.FindStringSubmatch(body)
		if len(matches) > 3 {
			feedURL := matches[3]
			if !strings.HasPrefix(feedURL, "http") {
				feedURL = strings.TrimSuffix(siteURL, "/") + "/" + strings.TrimPrefix(feedURL, "/")
			}
			return feedURL, nil
		}
	}

	// Try common feed paths
	baseURL := strings.TrimSuffix(siteURL, "/")
	for _, pattern := range feedPatterns {
		feedURL := baseURL + pattern
		resp, err := f.client.Head(feedURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return feedURL, nil
		}
	}

	return "", fmt.Errorf("could not discover feed for %s", siteURL)
}

func (f *Fetcher) get(pageURL string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 100000))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
