// Package media extracts and classifies image references found in
// record content.
package media

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
}

// ExtractImageURLs returns the src of every img tag in the given HTML,
// in document order and with duplicates removed. Inline data URIs are
// skipped.
func ExtractImageURLs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok {
			return
		}
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") || seen[src] {
			return
		}
		seen[src] = true
		urls = append(urls, src)
	})

	return urls, nil
}

// TypeByURL guesses a media type from the URL's file extension. URLs
// without a recognized extension count as JPEG, so CDN links still
// register as images.
func TypeByURL(rawURL string) string {
	ext := strings.ToLower(path.Ext(rawURL))
	if u, err := url.Parse(rawURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if mediaType, ok := imageTypes[ext]; ok {
		return mediaType
	}
	return "image/jpeg"
}
