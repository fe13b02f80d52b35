// cmd/inspect.go
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/content"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/mpeltier/thumbfix/internal/thumbnail"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <record-id>",
	Short: "Show details of a record",
	Long:  `Display a record with its attachments and the stored thumbnail meta.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record ID: %s", args[0])
	}

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
	rec, err := repo.Get(id)
	if err != nil {
		return fmt.Errorf("record not found: %d", id)
	}

	// Styles
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	divider := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(strings.Repeat("━", 70))

	fmt.Println(divider)
	fmt.Println(titleStyle.Render(rec.Title))
	fmt.Println(divider)

	fmt.Printf("%s %s\n", labelStyle.Render("Type:"), valueStyle.Render(rec.Type))
	fmt.Printf("%s %s\n", labelStyle.Render("Slug:"), valueStyle.Render(rec.Slug))
	if rec.ParentID != 0 {
		fmt.Printf("%s #%d\n", labelStyle.Render("Parent:"), rec.ParentID)
	}
	if rec.MediaType != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Media type:"), valueStyle.Render(rec.MediaType))
	}
	if rec.SourceURL != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Source:"), urlStyle.Render(rec.SourceURL))
	}
	fmt.Printf("%s %s\n", labelStyle.Render("Created:"), valueStyle.Render(rec.CreatedAt.Format("2006-01-02 15:04")))

	meta, err := repo.Meta(id)
	if err != nil {
		return err
	}
	if imageID, ok := meta[thumbnail.MetaThumbnailID]; ok {
		fmt.Printf("%s #%s\n", labelStyle.Render("Featured image:"), imageID)
	}
	if _, ok := meta[thumbnail.MetaNoThumbnail]; ok {
		fmt.Println(labelStyle.Render("Flagged: no thumbnail found"))
	}
	if candidates, ok := meta[thumbnail.MetaMultipleImages]; ok {
		fmt.Printf("%s %s\n", labelStyle.Render("Flagged: multiple images found:"), valueStyle.Render(candidates))
	}

	attachments, err := repo.Attachments(id)
	if err != nil {
		return err
	}
	if len(attachments) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("ATTACHMENTS:"))
		for _, att := range attachments {
			fmt.Printf("  #%-6d %-14s %s\n", att.ID, att.MediaType, att.SourceURL)
		}
	}

	// Content preview
	preview := stripHTML(rec.Content)
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	if preview != "" {
		fmt.Printf("\n%s\n", labelStyle.Render("PREVIEW:"))
		fmt.Println(valueStyle.Render(preview))
	}

	return nil
}

func stripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		if r == '<' {
			inTag = true
		} else if r == '>' {
			inTag = false
		} else if !inTag {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
