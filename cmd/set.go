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

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Assign featured images to records that lack one",
	Long: `Scans records without a featured image and assigns one from their
attached images. Records with no attached image are flagged so later
runs skip them; run 'thumbfix cleanup' to rescan those.`,
	RunE: runSet,
}

var (
	setAll        bool
	setAmount     int
	setPostType   string
	setFetchLimit int
)

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVar(&setAll, "all", false, "Process every matching record")
	setCmd.Flags().IntVar(&setAmount, "amount", 0, "Number of records to process (default from config)")
	setCmd.Flags().StringVar(&setPostType, "post_type", "", "Record type to scan (default from config)")
	setCmd.Flags().IntVar(&setFetchLimit, "fetch-limit", 0, "Attached images to fetch per record (default from config)")
}

func runSet(cmd *cobra.Command, args []string) error {
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

	opts := thumbnail.Options{
		PostType:   setPostType,
		Amount:     setAmount,
		All:        setAll,
		FetchLimit: setFetchLimit,
	}
	if opts.PostType == "" {
		opts.PostType = cfg.Defaults.PostType
	}
	if opts.Amount <= 0 {
		opts.Amount = cfg.Defaults.Amount
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = cfg.Defaults.FetchLimit
	}

	assigner := thumbnail.NewAssigner(content.NewRepository(db), os.Stdout)

	summary, err := assigner.Assign(opts)
	if err != nil {
		return err
	}

	if summary.Total == 0 {
		fmt.Printf("No %s records need a featured image. Nothing to do.\n", opts.PostType)
		return nil
	}

	fmt.Printf("\nScanned %d of %d records: %d assigned, %d without images, %d with multiple candidates\n",
		summary.Scanned, summary.Total, summary.Assigned, summary.NoImage, summary.Multiple)
	return nil
}
