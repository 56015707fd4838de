package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/eventease/internal/config"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate event statistics",
	RunE:  printStats,
}

func printStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg, newLogger(cfg.Logging))
	if err != nil {
		return err
	}

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	categories, err := store.GetCategories()
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	fmt.Printf("%-16s %d\n", "Events:", stats.TotalEvents)
	fmt.Printf("%-16s %d\n", "Upcoming:", stats.UpcomingCount)
	fmt.Printf("%-16s %d\n", "Completed:", stats.CompletedCount)
	fmt.Printf("%-16s %d\n", "Attendees:", stats.TotalAttendees)
	fmt.Printf("%-16s %.2f\n", "Revenue:", stats.TotalRevenue)
	fmt.Printf("%-16s %d\n", "Categories:", len(categories))
	return nil
}
