package cmd

import (
	"fmt"
	"os"

	"github.com/mpeltier/thumbfix/internal/config"
	"github.com/mpeltier/thumbfix/internal/database"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize thumbfix configuration and database",
	Long:  `Creates the ~/.thumbfix directory with config.yaml and a SQLite database.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	// Create directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Create config
	if err := config.Save(config.Default()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Created config at %s/config.yaml\n", dir)

	// Create database, honoring env overrides for driver and DSN
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	driver, dsn := cfg.DatabaseDSN()
	db, err := database.New(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	db.Close()
	if driver == "sqlite3" {
		fmt.Printf("Created database at %s\n", dsn)
	} else {
		fmt.Println("Connected to database and ensured schema")
	}

	fmt.Println("\nThumbfix initialized! Next steps:")
	fmt.Println("  thumbfix import <feed-url>   Import records from a feed")
	fmt.Println("  thumbfix set                 Assign featured images")

	return nil
}
