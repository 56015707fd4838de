package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/eventease/internal/config"
)

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(listBackupsCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the data file and prune old backups",
	RunE:  createBackup,
}

var listBackupsCmd = &cobra.Command{
	Use:   "list-backups",
	Short: "Print existing backups, newest first",
	RunE:  listBackups,
}

func createBackup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mgr, err := newBackupManager(cfg, newLogger(cfg.Logging))
	if err != nil {
		return err
	}

	b, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Println("Backup created successfully!")
	fmt.Printf("Backup file: %s\n", b.Path)
	fmt.Printf("Events backed up: %d\n", b.Events)
	return nil
}

func listBackups(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mgr, err := newBackupManager(cfg, newLogger(cfg.Logging))
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("%-45s  %-20s  %s\n", "ID", "CREATED", "SIZE")
	for _, b := range backups {
		fmt.Printf("%-45s  %-20s  %d\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size)
	}
	return nil
}
