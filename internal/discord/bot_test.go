package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type adminSlashCommand struct{}

func (adminSlashCommand) Name() string        { return "prune" }
func (adminSlashCommand) Description() string { return "prune things" }
func (adminSlashCommand) Aliases() []string   { return nil }
func (adminSlashCommand) RequireAdmin() bool  { return true }

func (adminSlashCommand) Run(ctx interface{}) error { return nil }

func (adminSlashCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: "prune", Description: "prune things"}
}

func TestNormalizeDefinitionRestrictsAdminCommands(t *testing.T) {
	def := normalizeDefinition(adminSlashCommand{})
	require.NotNil(t, def)
	require.Equal(t, discordgo.ChatApplicationCommand, def.Type)
	require.NotNil(t, def.DefaultMemberPermissions)
	require.Equal(t, int64(discordgo.PermissionAdministrator), *def.DefaultMemberPermissions)
}

func TestNormalizeDefinitionSkipsMessageOnlyCommands(t *testing.T) {
	require.Nil(t, normalizeDefinition(&prefixCommand{}))
}
