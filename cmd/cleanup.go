package cmd

import (
	"fmt"
	"os"

	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/content"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/mpeltier/thumbfix/internal/thumbnail"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the bookkeeping flags written by set",
	Long: `Removes the no-thumbnail and multiple-images flags from every record
carrying one, so the next 'thumbfix set' run scans those records again.
All record types are cleaned unless --post_type narrows the scope.`,
	RunE: runCleanup,
}

var cleanupPostType string

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().StringVar(&cleanupPostType, "post_type", "", "Only clean records of this type")
}

func runCleanup(cmd *cobra.Command, args []string) error {
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

	assigner := thumbnail.NewAssigner(content.NewRepository(db), os.Stdout)

	cleaned, err := assigner.Cleanup(cleanupPostType)
	if err != nil {
		return err
	}

	if cleaned == 0 {
		fmt.Println("No flagged records found. Nothing to clean.")
		return nil
	}

	fmt.Printf("\nRemoved flags from %d records\n", cleaned)
	return nil
}
