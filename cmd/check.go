package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the connection to the helpdesk API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ConnectionTest(ctx); err != nil {
			return err
		}

		fmt.Println("Connection to the helpdesk API is working.")
		return nil
	},
}
