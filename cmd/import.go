package cmd

import (
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/content"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/mpeltier/thumbfix/internal/feed"
	"github.com/mpeltier/thumbfix/internal/media"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <feed-or-site-url>",
	Short: "Import records and image attachments from a feed",
	Long: `Downloads items from an RSS or Atom feed and stores them as content
records. Images referenced by each item become attachment records, so
'thumbfix set' can pick featured images from them. When given a site
URL instead of a feed, the feed is discovered from the page.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importLimit    int
	importPostType string
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().IntVarP(&importLimit, "limit", "n", 0, "Maximum number of items to import")
	importCmd.Flags().StringVar(&importPostType, "post_type", "post", "Record type for imported items")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	driver, dsn := cfg.DatabaseDSN()
	db, err := database.New(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := content.NewRepository(db)
	fetcher := feed.NewFetcher(time.Duration(cfg.Import.TimeoutSeconds)*time.Second, cfg.Import.UserAgent)

	feedURL := args[0]
	items, err := fetcher.Fetch(feedURL)
	if err != nil {
		// maybe a site URL, try feed discovery
		discovered, derr := fetcher.Discover(feedURL)
		if derr != nil {
			return fmt.Errorf("failed to fetch feed: %w", err)
		}
		fmt.Printf("Discovered feed %s\n", discovered)
		items, err = fetcher.Fetch(discovered)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("Feed contains no items.")
		return nil
	}

	imported := 0
	attached := 0
	for _, item := range items {
		if importLimit > 0 && imported >= importLimit {
			break
		}
		if item.URL == "" {
			continue
		}

		exists, err := repo.Exists(item.URL)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		rec, err := repo.Add(content.Record{
			Type:      importPostType,
			Title:     item.Title,
			Content:   item.Content,
			SourceURL: item.URL,
		})
		if err != nil {
			return fmt.Errorf("failed to save %q: %w", item.Title, err)
		}
		imported++

		images := item.ImageURLs
		if inline, err := media.ExtractImageURLs(item.Content); err == nil {
			images = append(images, inline...)
		}

		count := 0
		seen := make(map[string]bool)
		for _, imageURL := range images {
			if seen[imageURL] {
				continue
			}
			seen[imageURL] = true

			exists, err := repo.Exists(imageURL)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			if _, err := repo.Add(content.Record{
				Type:      "attachment",
				ParentID:  rec.ID,
				Title:     imageTitle(imageURL),
				MediaType: media.TypeByURL(imageURL),
				SourceURL: imageURL,
			}); err != nil {
				return fmt.Errorf("failed to save attachment: %w", err)
			}
			count++
		}
		attached += count

		fmt.Printf("Imported %q with %d images\n", item.Title, count)
	}

	fmt.Printf("\nTotal: %d new records, %d image attachments\n", imported, attached)
	return nil
}

func imageTitle(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return rawURL
}
