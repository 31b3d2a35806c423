package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"server-scribe/internal/catalog"
)

// Refresh rebuilds the mirror from the catalog store and swaps it in
// atomically, so concurrent readers see either the old or the new snapshot
// set, never a partial one.
func (c *Cache) Refresh(ctx context.Context, store *catalog.Store) error {
	commands, err := store.ListCommands(ctx)
	if err != nil {
		return fmt.Errorf("cache refresh: list commands: %w", err)
	}
	versions, err := store.ListVersions(ctx)
	if err != nil {
		return fmt.Errorf("cache refresh: list versions: %w", err)
	}

	entries := make(map[string][]byte, len(commands)+len(versions))
	for _, cmd := range commands {
		raw, err := json.Marshal(cmd)
		if err != nil {
			return fmt.Errorf("cache refresh: marshal command %q: %w", cmd.Name, err)
		}
		entries[CommandKey(cmd.Name)] = raw
		for _, alias := range cmd.Aliases {
			entries[CommandKey(alias)] = raw
		}
	}
	for _, v := range versions {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cache refresh: marshal version %q: %w", v.Name, err)
		}
		entries[VersionKey(v.Name)] = raw
	}

	c.replace(entries)
	return nil
}
