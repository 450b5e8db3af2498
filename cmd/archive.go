package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/confops/helpdesk-toolkit/internal/archive"
	"github.com/spf13/cobra"
)

var (
	archiveUntil  string
	archiveTeams  []string
	archiveDelete bool
	archiveYear   int
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive aged tickets to JSON files, optionally deleting them",
}

var archiveRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Archive tickets created on or before a cutoff date",
	RunE:  runArchive,
}

var archiveMaintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Yearly cleanup: archive the standard teams through Sep 30 of the previous year",
	RunE:  runMaintenance,
}

func init() {
	archiveRunCmd.Flags().StringVar(&archiveUntil, "until", "", "cutoff date, YYYY-MM-DD (required)")
	archiveRunCmd.Flags().StringSliceVar(&archiveTeams, "team", nil, "team ID to archive (repeatable, required)")
	archiveCmd.PersistentFlags().BoolVar(&archiveDelete, "delete", false, "delete tickets from the helpdesk after archiving")

	archiveCmd.AddCommand(archiveRunCmd)
	archiveCmd.AddCommand(archiveMaintenanceCmd)

	archiveMaintenanceCmd.Flags().IntVar(&archiveYear, "year", time.Now().Year(), "maintenance year")
}

func newArchiver() (*archive.Archiver, error) {
	if config.ArchiveDir == "" {
		return nil, errors.New("no archive directory configured; set 'archive' in the config file")
	}

	return archive.NewArchiver(client, config.ArchiveDir), nil
}

// confirmDeletion is the one interactive gate in front of ticket deletion.
func confirmDeletion() (bool, error) {
	var confirmed bool
	prompt := huh.NewConfirm().
		Title("DANGER ZONE: archived tickets will be DELETED from the helpdesk. Continue?").
		Value(&confirmed)

	if err := prompt.WithTheme(huh.ThemeBase16()).Run(); err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}

	return confirmed, nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	if archiveUntil == "" || len(archiveTeams) == 0 {
		return errors.New("--until and at least one --team are required")
	}

	until, err := time.Parse("2006-01-02", archiveUntil)
	if err != nil {
		return fmt.Errorf("parsing --until: %w", err)
	}

	archiver, err := newArchiver()
	if err != nil {
		return err
	}

	if !archiveDelete {
		return archiver.Archive(ctx, archiveTeams, until, nil)
	}

	confirmed, err := confirmDeletion()
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted, nothing archived.")
		return nil
	}

	return archiver.ArchiveAndDelete(ctx, archiveTeams, until)
}

func runMaintenance(cmd *cobra.Command, args []string) error {
	archiver, err := newArchiver()
	if err != nil {
		return err
	}

	if archiveDelete {
		confirmed, err := confirmDeletion()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted, nothing archived.")
			return nil
		}
	}

	return archiver.Maintenance(ctx, archiveYear, archiveDelete)
}
