package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local team/agent/tag caches",
}

var cacheUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the team, agent and tag caches from the helpdesk",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.UpdateTeams(ctx); err != nil {
			return err
		}
		if err := client.UpdateAgents(ctx); err != nil {
			return err
		}
		if err := client.UpdateTags(ctx); err != nil {
			return err
		}

		fmt.Println("Caches updated:", config.CacheDir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheUpdateCmd)
}
