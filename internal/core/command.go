package core

import (
	"server-scribe/internal/cache"
	"server-scribe/internal/catalog"
	"server-scribe/internal/config"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	RequireAdmin() bool
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Contexts - what runtime hands you when executing a command
// Slash command
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Catalog *catalog.Store
	Cache   *cache.Cache
	Config  *config.Config
}

// Message
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Catalog *catalog.Store
	Cache   *cache.Cache
	Config  *config.Config

	// CommandName is filled in by the runner once the message resolves to a
	// catalog command. It stays empty for ordinary chat, which must never
	// reach the command history.
	CommandName string
}
