package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/eventease/internal/config"
	"github.com/youmna-rabie/eventease/internal/types"
)

var eventsFilter types.EventFilter

func init() {
	listEventsCmd.Flags().StringVar(&eventsFilter.Category, "category", "", "only events in this category (case-insensitive)")
	listEventsCmd.Flags().StringVar(&eventsFilter.Status, "status", "", "only events with this status (upcoming or completed)")
	listEventsCmd.Flags().StringVar(&eventsFilter.Search, "search", "", "only events whose title or description contains this text")
	rootCmd.AddCommand(listEventsCmd)
}

var listEventsCmd = &cobra.Command{
	Use:   "list-events",
	Short: "Print events from the data file",
	RunE:  listEvents,
}

func listEvents(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg, newLogger(cfg.Logging))
	if err != nil {
		return err
	}

	events, err := store.Filter(eventsFilter)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	fmt.Printf("%-36s  %-30s  %-10s  %-15s  %-10s  %-11s  %s\n", "ID", "TITLE", "DATE", "CATEGORY", "STATUS", "SEATS", "FREE")
	for _, e := range events {
		seats := fmt.Sprintf("%d/%d", e.Attendees, e.Capacity)
		fmt.Printf("%-36s  %-30s  %-10s  %-15s  %-10s  %-11s  %d\n",
			e.ID, truncate(e.Title, 30), e.Date, truncate(e.Category, 15), e.Status, seats, e.Remaining())
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
