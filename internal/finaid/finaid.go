// Package finaid retrieves financial-aid tickets by their agent-applied
// tags. The vendor tag filter is OR-only, so the AND semantics the
// processing needs are applied client-side on the over-fetched result.
package finaid

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
)

// rejected applications are tagged by agents and never paid out
var excludedTags = []string{"recipient:rejected"}

type Finder struct {
	client *helpdesk.Client
}

func NewFinder(client *helpdesk.Client) *Finder {
	return &Finder{client: client}
}

// TicketsWithAllTags returns tickets carrying every one of the named tags
// and none of the excluded ones. Unknown tag names are an error rather
// than a silently empty filter.
func (f *Finder) TicketsWithAllTags(ctx context.Context, tagNames, excludeTagNames []string) ([]helpdesk.Ticket, error) {
	tagIds, err := f.client.TagIDsForNames(ctx, tagNames)
	if err != nil {
		return nil, fmt.Errorf("resolving tag names: %w", err)
	}

	excludedIds, err := f.client.TagIDsForNames(ctx, excludeTagNames)
	if err != nil {
		return nil, fmt.Errorf("resolving excluded tag names: %w", err)
	}

	// OR-search: the vendor returns tickets matching any of the tags.
	params := url.Values{"tagIDs": tagIds}
	tickets, err := f.client.GetTickets(ctx, params)
	if err != nil {
		return nil, err
	}

	matched := filterTickets(tickets, tagIds, excludedIds)
	slog.Debug("filtered tagged tickets", "fetched", len(tickets), "matched", len(matched))
	return matched, nil
}

// filterTickets keeps tickets whose tag set contains every required ID and
// intersects none of the excluded IDs.
func filterTickets(tickets []helpdesk.Ticket, requiredIds, excludedIds []string) []helpdesk.Ticket {
	var matched []helpdesk.Ticket

ticketLoop:
	for _, t := range tickets {
		for _, id := range requiredIds {
			if !slices.Contains(t.TagIDs, id) {
				continue ticketLoop
			}
		}
		for _, id := range excludedIds {
			if slices.Contains(t.TagIDs, id) {
				continue ticketLoop
			}
		}
		matched = append(matched, t)
	}

	return matched
}

// OnlineAccepted returns accepted financial-aid tickets for online
// attendance.
func (f *Finder) OnlineAccepted(ctx context.Context) ([]helpdesk.Ticket, error) {
	return f.TicketsWithAllTags(ctx, []string{"accepted", "online-ticket"}, excludedTags)
}

// InPersonAccepted returns accepted financial-aid tickets for in-person
// attendance.
func (f *Finder) InPersonAccepted(ctx context.Context) ([]helpdesk.Ticket, error) {
	return f.TicketsWithAllTags(ctx, []string{"accepted", "in-person-ticket"}, excludedTags)
}
