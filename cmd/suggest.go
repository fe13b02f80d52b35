// cmd/suggest.go
package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/content"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/mpeltier/thumbfix/internal/thumbnail"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Preview featured image assignments without writing",
	Long: `Shows, for each record without a featured image, the attached images
'thumbfix set' would consider. Nothing is written.`,
	RunE: runSuggest,
}

var (
	suggestPostType string
	suggestLimit    int
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVar(&suggestPostType, "post_type", "", "Record type to scan (default from config)")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 20, "Number of records to preview")
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	postType := suggestPostType
	if postType == "" {
		postType = cfg.Defaults.PostType
	}

	ids, total, err := repo.RecordsLackingMeta(postType, []string{thumbnail.MetaThumbnailID, thumbnail.MetaNoThumbnail}, suggestLimit)
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Printf("No %s records need a featured image.\n", postType)
		return nil
	}

	idStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	for _, id := range ids {
		rec, err := repo.Get(id)
		if err != nil {
			return err
		}

		images, err := repo.AttachedImages(id, 0)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", idStyle.Render(fmt.Sprintf("#%d", id)), rec.Title)
		if len(images) == 0 {
			fmt.Printf("  %s\n", labelStyle.Render("no attached images, set would flag this record"))
			continue
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("candidates:"), thumbnail.JoinIDs(images))
	}

	if total > len(ids) {
		fmt.Printf("\n%d more records not shown\n", total-len(ids))
	}
	return nil
}
