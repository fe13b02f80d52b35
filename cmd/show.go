// cmd/show.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/content"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/mpeltier/thumbfix/internal/thumbnail"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var showCmd = &cobra.Command{
	Use:   "show <unset|multiple>",
	Short: "List records flagged during assignment",
	Long: `Lists records flagged by 'thumbfix set'. Mode 'unset' shows records
where no attached image was found; 'multiple' shows records where
several candidate images were recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showPostType string
	showJSON     bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showPostType, "post_type", "", "Record type to list (default from config)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit the report as JSON")
}

type showRecord struct {
	ID         int64  `json:"id"`
	Title      string `json:"title,omitempty"`
	Candidates string `json:"candidates,omitempty"`
}

type showReport struct {
	Mode     string       `json:"mode"`
	PostType string       `json:"post_type"`
	Count    int          `json:"count"`
	Records  []showRecord `json:"records"`
}

func runShow(cmd *cobra.Command, args []string) error {
	mode, err := thumbnail.ParseMode(args[0])
	if err != nil {
		return err
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
	assigner := thumbnail.NewAssigner(repo, nil)

	postType := showPostType
	if postType == "" {
		postType = cfg.Defaults.PostType
	}

	ids, err := assigner.List(mode, postType)
	if err != nil {
		return err
	}

	records := make([]showRecord, 0, len(ids))
	for _, id := range ids {
		row := showRecord{ID: id}
		if rec, err := repo.Get(id); err == nil {
			row.Title = rec.Title
		}
		if mode == thumbnail.ModeMultiple {
			meta, err := repo.Meta(id)
			if err != nil {
				return err
			}
			row.Candidates = meta[thumbnail.MetaMultipleImages]
		}
		records = append(records, row)
	}

	if showJSON {
		report := showReport{
			Mode:     string(mode),
			PostType: postType,
			Count:    len(records),
			Records:  records,
		}
		encoded, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	if len(records) == 0 {
		fmt.Printf("No %s records flagged as %s.\n", postType, mode)
		return nil
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	// Header
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-6s  %-16s  %s", "ID", "CANDIDATES", "TITLE")))
	fmt.Println(strings.Repeat("─", 80))

	for _, row := range records {
		candidates := row.Candidates
		if candidates == "" {
			candidates = "-"
		}
		if len(candidates) > 16 {
			candidates = candidates[:13] + "..."
		}

		title := row.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		fmt.Printf(" %s  %s  %s\n",
			idStyle.Render(fmt.Sprintf("%-6d", row.ID)),
			flagStyle.Render(fmt.Sprintf("%-16s", candidates)),
			title,
		)
	}

	fmt.Printf("\n%d records\n", len(records))
	return nil
}
