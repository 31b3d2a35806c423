// Package cache is the process-local mirror of the command catalog that the
// message resolver reads on every incoming message. Entries are JSON
// snapshots of catalog records; a missing entry simply means "no match".
package cache

import (
	"encoding/json"
	"strings"
	"sync"

	"server-scribe/internal/catalog"
)

const (
	commandKeyPrefix = "PF_COMMAND:"
	versionKeyPrefix = "PF_VERSION:"
)

// CommandKey returns the cache key for a command (or alias) name.
func CommandKey(name string) string {
	return commandKeyPrefix + strings.ToLower(name)
}

// VersionKey returns the cache key for a version name.
func VersionKey(name string) string {
	return versionKeyPrefix + strings.ToLower(name)
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func New() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Get retrieves the raw snapshot stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.entries[key]
	return value, exists
}

// Set stores a raw snapshot under key.
func (c *Cache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Delete removes the snapshot stored under key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of snapshots currently held.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// replace swaps the whole entry map in one step.
func (c *Cache) replace(entries map[string][]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
}

// GetCommand hydrates the command cached under name, if present.
func (c *Cache) GetCommand(name string) (catalog.Command, bool) {
	raw, ok := c.Get(CommandKey(name))
	if !ok {
		return catalog.Command{}, false
	}
	var cmd catalog.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return catalog.Command{}, false
	}
	return cmd, true
}

// GetVersion hydrates the version cached under name, if present.
func (c *Cache) GetVersion(name string) (catalog.Version, bool) {
	raw, ok := c.Get(VersionKey(name))
	if !ok {
		return catalog.Version{}, false
	}
	var v catalog.Version
	if err := json.Unmarshal(raw, &v); err != nil {
		return catalog.Version{}, false
	}
	return v, true
}

// PutCommand stores a command snapshot under its name and every alias.
func (c *Cache) PutCommand(cmd catalog.Command) error {
	raw, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	c.Set(CommandKey(cmd.Name), raw)
	for _, alias := range cmd.Aliases {
		c.Set(CommandKey(alias), raw)
	}
	return nil
}

// PutVersion stores a version snapshot under its name.
func (c *Cache) PutVersion(v catalog.Version) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(VersionKey(v.Name), raw)
	return nil
}

// DeleteCommand drops a command snapshot and its alias keys.
func (c *Cache) DeleteCommand(cmd catalog.Command) {
	c.Delete(CommandKey(cmd.Name))
	for _, alias := range cmd.Aliases {
		c.Delete(CommandKey(alias))
	}
}
