package discord

import (
	"server-scribe/internal/core"
)

// prefixCommand adapts the resolver and reply composer to the command
// middleware chain, so message executions get the same guild gating and
// history logging as slash commands.
type prefixCommand struct {
	bot *Bot
}

var _ core.Command = (*prefixCommand)(nil)

func (c *prefixCommand) Name() string        { return "prefix-message" }
func (c *prefixCommand) Description() string { return "Replies to prefix commands from the catalog" }
func (c *prefixCommand) Aliases() []string   { return nil }
func (c *prefixCommand) RequireAdmin() bool  { return false }

func (c *prefixCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*core.MessageContext)
	if !ok {
		return nil
	}

	resolution, ok := c.bot.resolver.Resolve(v.Event.Content)
	if !ok {
		return nil
	}

	// Mark the resolution before replying. A failed send is still an
	// execution and belongs in the history.
	v.CommandName = resolution.Command.Name

	return c.bot.reply(v.Session, v.Event.Message, resolution)
}
