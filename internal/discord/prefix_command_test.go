package discord

import (
	"errors"
	"net/http"
	"testing"

	"server-scribe/internal/config"
	"server-scribe/internal/core"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("gateway unreachable")
}

// offlineSession builds a session whose REST calls always fail, so tests
// never reach the network.
func offlineSession(t *testing.T) *discordgo.Session {
	t.Helper()

	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: failingTransport{}}
	return s
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	return NewBot(&config.Config{PrefixCommandPrefix: "!"}, nil, newTestCache(t))
}

func messageContext(s *discordgo.Session, guildID, content string) *core.MessageContext {
	return &core.MessageContext{
		Session: s,
		Event: &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID:   guildID,
			ChannelID: "chan-1",
			Content:   content,
			Author:    &discordgo.User{ID: "user-1", Username: "mod"},
		}},
	}
}

func TestPrefixRunnerIgnoresPlainChat(t *testing.T) {
	b := newTestBot(t)

	ctx := messageContext(nil, "guild-1", "hello there")
	require.NoError(t, b.prefix.Run(ctx))
	require.Empty(t, ctx.CommandName)
}

func TestPrefixRunnerBlocksDirectMessages(t *testing.T) {
	b := newTestBot(t)

	ctx := messageContext(nil, "", "!greet")
	require.NoError(t, b.prefix.Run(ctx))
	require.Empty(t, ctx.CommandName)
}

func TestPrefixRunnerMarksResolvedCommand(t *testing.T) {
	b := newTestBot(t)

	ctx := messageContext(offlineSession(t), "guild-1", "!greet")
	require.Error(t, b.prefix.Run(ctx), "send must fail without a gateway")
	require.Equal(t, "greet", ctx.CommandName, "a failed send is still an execution")
}
