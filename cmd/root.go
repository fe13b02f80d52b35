package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "thumbfix",
	Short: "Assign featured images to content records",
	Long: `Thumbfix scans content records that have no featured image, picks one
from their attached images, and flags records where nothing suitable was
found so later runs skip them.`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
