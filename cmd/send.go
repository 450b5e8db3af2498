package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/confops/helpdesk-toolkit/internal/mailing"
	"github.com/spf13/cobra"
)

var sendYes bool

var sendCmd = &cobra.Command{
	Use:   "send <batch-file>",
	Short: "Send a batch message, one helpdesk ticket per recipient",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendYes, "yes", false, "skip the confirmation prompt")
}

func runSend(cmd *cobra.Command, args []string) error {
	def, err := mailing.LoadDefinition(args[0])
	if err != nil {
		return err
	}

	teams, err := client.Teams(ctx)
	if err != nil {
		return err
	}
	agents, err := client.Agents(ctx)
	if err != nil {
		return err
	}

	msg, err := mailing.NewBatchMessage(def, teams, agents)
	if err != nil {
		return err
	}

	if !sendYes {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Send %q to %d recipients via team %s?", msg.Subject, len(msg.Recipients), teams[msg.TeamID])).
			Value(&confirmed)
		if err := prompt.WithTheme(huh.ThemeBase16()).Run(); err != nil {
			return fmt.Errorf("running confirmation prompt: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted, nothing sent.")
			return nil
		}
	}

	var results []mailing.SendResult
	sender := mailing.NewSender(client, msg)
	err = spinner.New().
		Title("Sending batch message...").
		Action(func() { results = sender.SendBatch(ctx) }).
		Run()
	if err != nil {
		return fmt.Errorf("running send spinner: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAILED %s: %v\n", r.Recipient.Email, r.Err)
		}
	}

	fmt.Printf("Sent %d of %d messages.\n", len(results)-failed, len(results))
	return nil
}
