// Package archive moves aged tickets into cold storage once a conference
// is closed, then optionally deletes them from the vendor system.
//
// DANGER ZONE: this can delete tickets. The archive-then-delete flow is
// best-effort and not atomic; a ticket whose deletion fails stays live
// even though it is already in the archive file.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
	"github.com/google/uuid"
)

// Tickets younger than this are never archived or deleted.
const safetyThresholdDays = 90

type Archiver struct {
	client *helpdesk.Client
	dir    string
}

func NewArchiver(client *helpdesk.Client, dir string) *Archiver {
	return &Archiver{client: client, dir: dir}
}

// Archive fetches all tickets created on or before toDate for each team,
// one team at a time, and writes each non-empty batch to a timestamped
// JSON file. If handle is non-nil it is called with every archived batch.
//
// The cutoff must be at least 90 days in the past; that guard runs before
// any network call.
func (a *Archiver) Archive(ctx context.Context, teamIds []string, toDate time.Time, handle func(teamId string, tickets []helpdesk.Ticket) error) error {
	if toDate.AddDate(0, 0, safetyThresholdDays).After(time.Now()) {
		return fmt.Errorf("never delete tickets younger than %d days", safetyThresholdDays)
	}

	teams, err := a.client.Teams(ctx)
	if err != nil {
		return err
	}

	for i, teamId := range teamIds {
		params := url.Values{}
		params.Set("createdDateTo", helpdesk.Timestamp(toDate))
		// team the ticket is visible to; this param requires [] notation
		params.Set("teamIDs[]", teamId)

		teamName := teams[teamId]
		tickets, err := a.client.GetTickets(ctx, params)
		if err != nil {
			return fmt.Errorf("fetching tickets for team %s: %w", teamName, err)
		}

		if len(tickets) == 0 {
			slog.Info("nothing left to be archived", "team", teamName)
			continue
		}

		path := filepath.Join(a.dir, archiveFileName(teamName, toDate, i))
		if err := writeArchive(path, tickets); err != nil {
			return err
		}
		slog.Info("archived tickets", "team", teamName, "total", len(tickets), "file", path)

		if handle != nil {
			if err := handle(teamId, tickets); err != nil {
				return err
			}
		}
	}

	return nil
}

// ArchiveAndDelete archives each team's aged tickets and then deletes them
// from the vendor. Deletion failures are logged per ticket and do not
// abort the run.
func (a *Archiver) ArchiveAndDelete(ctx context.Context, teamIds []string, toDate time.Time) error {
	return a.Archive(ctx, teamIds, toDate, func(teamId string, tickets []helpdesk.Ticket) error {
		slog.Info("deleting archived tickets", "total", len(tickets))
		a.deleteTickets(ctx, tickets)
		return nil
	})
}

func (a *Archiver) deleteTickets(ctx context.Context, tickets []helpdesk.Ticket) {
	for _, t := range tickets {
		if err := a.client.DeleteTicket(ctx, t.ID); err != nil {
			slog.Error("deleting ticket", "ticketId", t.ID, "error", err)
			continue
		}
		slog.Info("deleted ticket", "ticketId", t.ID)
	}
}

// archiveFileName builds a unique name from the team, the cutoff and a
// short random suffix, with path characters replaced.
func archiveFileName(teamName string, toDate time.Time, seq int) string {
	name := fmt.Sprintf("a_%s_%s_%02d_%s.json", teamName, helpdesk.Timestamp(toDate), seq, uuid.NewString()[:4])
	return strings.NewReplacer("/", "-", ":", "-").Replace(name)
}

func writeArchive(path string, tickets []helpdesk.Ticket) error {
	data, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("marshaling archive: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing archive file: %w", err)
	}

	return nil
}

// Teams archived by the yearly maintenance run. Sponsoring and the
// organization's own helpdesk are always kept.
var maintenanceTeams = []string{
	// General Helpdesk
	"031061f2-195e-4f1f-8e08-67db15beabda",
	// Program/Speakers
	"3f68251e-17e9-436f-90c3-c03b06a72472",
	// Diversity Committee
	"89ac36d6-2e58-43ee-a519-a098ed7a6f82",
}

// Maintenance archives (and with deleteAfter, removes) all tickets on the
// maintenance team list filed through September 30 of the year before the
// given one. Make sure maintenanceTeams is up to date before running.
func (a *Archiver) Maintenance(ctx context.Context, year int, deleteAfter bool) error {
	cutoff := time.Date(year-1, time.September, 30, 0, 0, 0, 0, time.UTC)

	if deleteAfter {
		return a.ArchiveAndDelete(ctx, maintenanceTeams, cutoff)
	}

	return a.Archive(ctx, maintenanceTeams, cutoff, nil)
}
