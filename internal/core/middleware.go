package core

import (
	"context"
	"log"

	"server-scribe/internal/catalog"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.GuildID == "" {
					return nil
				}
				if v, ok := ctx.(*MessageContext); ok && v.Event.GuildID == "" {
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger wraps a command to record its execution in the catalog's
// command history after it runs.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				err := cmd.Run(ctx)

				switch v := ctx.(type) {
				case *SlashInteractionContext:
					member := v.Event.Member
					if member == nil || v.Catalog == nil {
						break
					}
					user := member.User
					if e := LogCommand(v.Session, v.Catalog, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
						log.Printf("[WARN] Failed to log command /%s: %v", cmd.Name(), e)
					}

				case *MessageContext:
					if v.Catalog == nil || v.CommandName == "" {
						break
					}
					user := v.Event.Author
					if e := LogCommand(v.Session, v.Catalog, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, v.CommandName); e != nil {
						log.Printf("[WARN] Failed to log message command %s: %v", v.CommandName, e)
					}
				}

				return err
			},
		}
	}
}

// LogCommand records a command execution, resolving channel and guild names
// from state with an API fallback.
func LogCommand(s *discordgo.Session, store *catalog.Store, guildID, channelID, userID, username, commandName string) error {
	channelName := ""
	guildName := ""

	if s != nil {
		channel, err := s.State.Channel(channelID)
		if err != nil {
			channel, err = s.Channel(channelID)
			if err != nil {
				log.Println("[WARN] Failed to fetch channel:", err)
			}
		}
		if channel != nil {
			channelName = channel.Name
		}

		guild, err := s.State.Guild(guildID)
		if err != nil {
			guild, err = s.Guild(guildID)
			if err != nil {
				log.Println("[WARN] Failed to fetch guild:", err)
			}
		}
		if guild != nil {
			guildName = guild.Name
		}
	}

	return store.AppendCommandHistory(context.Background(), catalog.CommandHistoryRecord{
		GuildID:     guildID,
		GuildName:   guildName,
		ChannelID:   channelID,
		ChannelName: channelName,
		UserID:      userID,
		Username:    username,
		Command:     commandName,
	})
}
