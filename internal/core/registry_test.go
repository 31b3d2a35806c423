package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type namedCommand struct {
	name    string
	aliases []string
}

func (c *namedCommand) Name() string        { return c.name }
func (c *namedCommand) Description() string { return "named" }
func (c *namedCommand) Aliases() []string   { return c.aliases }
func (c *namedCommand) RequireAdmin() bool  { return false }

func (c *namedCommand) Run(ctx interface{}) error { return nil }

func TestRegistryAliasLookup(t *testing.T) {
	cmd := &namedCommand{name: "purge", aliases: []string{"clean"}}
	RegisterCommand(cmd)

	byName, ok := GetCommand("purge")
	require.True(t, ok)
	byAlias, ok := GetCommand("clean")
	require.True(t, ok)
	require.Same(t, byName, byAlias)

	count := 0
	for _, c := range AllCommands() {
		if c.Name() == "purge" {
			count++
		}
	}
	require.Equal(t, 1, count, "alias entries must fold into one command")
}
