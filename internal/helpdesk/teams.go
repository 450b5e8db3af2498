package helpdesk

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

type Team struct {
	ID   string `json:"ID"`
	Name string `json:"name"`
}

// Teams returns the team lookup, populating it on first access. The cache
// lives for the client's lifetime and is only refreshed by UpdateTeams.
func (c *Client) Teams(ctx context.Context) (Lookup, error) {
	if c.teams == nil {
		if err := c.UpdateTeams(ctx); err != nil {
			return nil, err
		}
	}

	return c.teams, nil
}

// UpdateTeams rebuilds the team lookup from the vendor and persists it to
// teams.json in the cache directory.
func (c *Client) UpdateTeams(ctx context.Context) error {
	var teams []Team
	if err := c.getJSON(ctx, c.BaseURL+"/teams", nil, &teams); err != nil {
		return fmt.Errorf("request for teams failed, aborting: %w", err)
	}

	byName := make(map[string]string, len(teams))
	for _, t := range teams {
		byName[t.Name] = t.ID
	}

	lookup := buildLookup(byName)
	if err := lookup.Save(filepath.Join(c.cacheDir, "teams.json")); err != nil {
		return fmt.Errorf("caching teams: %w", err)
	}

	slog.Debug("updated team cache", "totalTeams", len(teams))
	c.teams = lookup
	return nil
}
