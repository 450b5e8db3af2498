package helpdesk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

type Tag struct {
	ID   string `json:"ID"`
	Name string `json:"name"`
}

var ErrTagNotFound = errors.New("tag not found")

// Tags returns the cached tag list, populating it on first access.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	if c.allTags == nil {
		if err := c.UpdateTags(ctx); err != nil {
			return nil, err
		}
	}

	return c.allTags, nil
}

// UpdateTags rebuilds the tag cache from the vendor and persists the
// name/ID lookup to tags.json in the cache directory.
func (c *Client) UpdateTags(ctx context.Context) error {
	var tags []Tag
	if err := c.getJSON(ctx, c.BaseURL+"/tags", nil, &tags); err != nil {
		return fmt.Errorf("request for tags failed, aborting: %w", err)
	}

	byName := make(map[string]string, len(tags))
	for _, t := range tags {
		byName[t.Name] = t.ID
	}

	if err := buildLookup(byName).Save(filepath.Join(c.cacheDir, "tags.json")); err != nil {
		return fmt.Errorf("caching tags: %w", err)
	}

	slog.Debug("updated tag cache", "totalTags", len(tags))
	c.allTags = tags
	return nil
}

// TagIDForName scans the tag cache for a tag with the given name. Unknown
// names are an error so a bad name never turns into an empty filter value.
func (c *Client) TagIDForName(ctx context.Context, name string) (string, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return "", err
	}

	for _, t := range tags {
		if t.Name == name {
			return t.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrTagNotFound, name)
}

func (c *Client) TagIDsForNames(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, err := c.TagIDForName(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
