package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/confops/helpdesk-toolkit/internal/finaid"
	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
	"github.com/confops/helpdesk-toolkit/internal/tui"
	"github.com/spf13/cobra"
)

var (
	finaidPlain   bool
	finaidExclude []string
)

var finaidCmd = &cobra.Command{
	Use:   "finaid",
	Short: "Retrieve financial-aid tickets by tag",
}

var finaidOnlineCmd = &cobra.Command{
	Use:   "online",
	Short: "Accepted financial-aid tickets for online attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTickets("FinAid: accepted, online", func(ctx context.Context, f *finaid.Finder) ([]helpdesk.Ticket, error) {
			return f.OnlineAccepted(ctx)
		})
	},
}

var finaidInPersonCmd = &cobra.Command{
	Use:   "inperson",
	Short: "Accepted financial-aid tickets for in-person attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTickets("FinAid: accepted, in person", func(ctx context.Context, f *finaid.Finder) ([]helpdesk.Ticket, error) {
			return f.InPersonAccepted(ctx)
		})
	},
}

var finaidTagsCmd = &cobra.Command{
	Use:   "tags [tag...]",
	Short: "Tickets carrying all of the given tags (picker if none given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		chosen := args
		if len(chosen) == 0 {
			var err error
			if chosen, err = tagPicker(); err != nil {
				return err
			}
		}

		title := "Tickets tagged: " + strings.Join(chosen, ", ")
		return showTickets(title, func(ctx context.Context, f *finaid.Finder) ([]helpdesk.Ticket, error) {
			return f.TicketsWithAllTags(ctx, chosen, finaidExclude)
		})
	},
}

func init() {
	finaidCmd.PersistentFlags().BoolVar(&finaidPlain, "plain", false, "print to stdout instead of the pager")
	finaidTagsCmd.Flags().StringSliceVar(&finaidExclude, "exclude", nil, "tags that disqualify a ticket")

	finaidCmd.AddCommand(finaidOnlineCmd)
	finaidCmd.AddCommand(finaidInPersonCmd)
	finaidCmd.AddCommand(finaidTagsCmd)
}

func tagPicker() ([]string, error) {
	tags, err := client.Tags(ctx)
	if err != nil {
		return nil, err
	}

	var tagNames []string
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}

	var chosen []string
	input := huh.NewMultiSelect[string]().
		Title("Select tags (tickets must carry all of them)").
		Options(huh.NewOptions(tagNames...)...).
		Value(&chosen)

	if err := input.WithTheme(huh.ThemeBase16()).Run(); err != nil {
		return nil, fmt.Errorf("running tag selection form: %w", err)
	}

	return chosen, nil
}

func showTickets(title string, fetch func(context.Context, *finaid.Finder) ([]helpdesk.Ticket, error)) error {
	finder := finaid.NewFinder(client)
	tickets, err := fetch(ctx, finder)
	if err != nil {
		return err
	}

	body := renderTickets(tickets)
	if finaidPlain {
		fmt.Print(body)
		return nil
	}

	return tui.Run(fmt.Sprintf("%s (%d)", title, len(tickets)), body)
}

func renderTickets(tickets []helpdesk.Ticket) string {
	if len(tickets) == 0 {
		return "no matching tickets\n"
	}

	var b strings.Builder
	for _, t := range tickets {
		fmt.Fprintf(&b, "%s  %-8s  %s  %s\n", t.ID, t.Status, t.CreatedDate, t.Subject)
	}

	return b.String()
}
