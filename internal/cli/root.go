package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "eventease",
	Short: "EventEase event record service",
	Long:  "eventease stores event records in a durable JSON file, serves them over HTTP, and keeps rotating backups of the data file.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "eventease.yaml", "path to configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
