package core

import (
	"context"
	"path/filepath"
	"testing"

	"server-scribe/internal/catalog"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// recordedCommand counts its runs and, for message contexts, reports the
// given name as the resolved command.
type recordedCommand struct {
	runs     int
	resolved string
}

func (c *recordedCommand) Name() string        { return "recorded" }
func (c *recordedCommand) Description() string { return "records runs" }
func (c *recordedCommand) Aliases() []string   { return nil }
func (c *recordedCommand) RequireAdmin() bool  { return false }

func (c *recordedCommand) Run(ctx interface{}) error {
	c.runs++
	if v, ok := ctx.(*MessageContext); ok && c.resolved != "" {
		v.CommandName = c.resolved
	}
	return nil
}

func newHistoryStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.ApplyMigrations())
	return store
}

func guildMessage(guildID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		GuildID:   guildID,
		ChannelID: "chan-1",
		Content:   content,
		Author:    &discordgo.User{ID: "user-1", Username: "mod"},
	}}
}

func TestCommandLoggerRecordsResolvedMessage(t *testing.T) {
	store := newHistoryStore(t)
	cmd := ApplyMiddlewares(&recordedCommand{resolved: "greet"}, WithCommandLogger())

	ctx := &MessageContext{
		Event:   guildMessage("guild-1", "!greet"),
		Catalog: store,
	}
	require.NoError(t, cmd.Run(ctx))

	rows, err := store.CommandHistory(context.Background(), "guild-1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "greet", rows[0].Command)
	require.Equal(t, "user-1", rows[0].UserID)
	require.Equal(t, "mod", rows[0].Username)
	require.Equal(t, "chan-1", rows[0].ChannelID)
}

func TestCommandLoggerSkipsPlainChat(t *testing.T) {
	store := newHistoryStore(t)
	cmd := ApplyMiddlewares(&recordedCommand{}, WithCommandLogger())

	ctx := &MessageContext{
		Event:   guildMessage("guild-1", "hello there"),
		Catalog: store,
	}
	require.NoError(t, cmd.Run(ctx))

	rows, err := store.CommandHistory(context.Background(), "guild-1", 10)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestGuildOnlyBlocksDirectMessages(t *testing.T) {
	inner := &recordedCommand{}
	cmd := ApplyMiddlewares(inner, WithGuildOnly())

	require.NoError(t, cmd.Run(&MessageContext{Event: guildMessage("", "!greet")}))
	require.Equal(t, 0, inner.runs)

	require.NoError(t, cmd.Run(&MessageContext{Event: guildMessage("guild-1", "!greet")}))
	require.Equal(t, 1, inner.runs)
}
