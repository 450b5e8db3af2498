package helpdesk

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
)

type Agent struct {
	ID    string   `json:"ID"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// active agents only - inactive and watcher roles are excluded
var activeAgentRoles = []string{"normal", "owner"}

func (a Agent) active() bool {
	for _, r := range a.Roles {
		if slices.Contains(activeAgentRoles, r) {
			return true
		}
	}

	return false
}

// Agents returns the agent lookup, populating it on first access.
func (c *Client) Agents(ctx context.Context) (Lookup, error) {
	if c.agents == nil {
		if err := c.UpdateAgents(ctx); err != nil {
			return nil, err
		}
	}

	return c.agents, nil
}

// UpdateAgents rebuilds the agent lookup from the vendor, keeping active
// agents only, and persists it to agents.json in the cache directory.
func (c *Client) UpdateAgents(ctx context.Context) error {
	var agents []Agent
	if err := c.getJSON(ctx, c.BaseURL+"/agents", nil, &agents); err != nil {
		return fmt.Errorf("request for agents failed, aborting: %w", err)
	}

	byName := make(map[string]string)
	for _, a := range agents {
		if a.active() {
			byName[a.Name] = a.ID
		}
	}

	lookup := buildLookup(byName)
	if err := lookup.Save(filepath.Join(c.cacheDir, "agents.json")); err != nil {
		return fmt.Errorf("caching agents: %w", err)
	}

	slog.Debug("updated agent cache", "totalAgents", len(agents), "activeAgents", len(byName))
	c.agents = lookup
	return nil
}
