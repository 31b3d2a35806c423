package command

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// optionMap indexes an interaction's options by name.
func optionMap(e *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := e.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// resolveRole resolves free-text role input against a guild. Accepts a raw
// role id or a role mention; falls back to an exact name match against the
// guild's role list.
func resolveRole(s *discordgo.Session, guildID, text string) *discordgo.Role {
	id := strings.TrimSuffix(strings.TrimPrefix(text, "<@&"), ">")

	if role, err := s.State.Role(guildID, id); err == nil && role != nil {
		return role
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil
	}
	for _, role := range roles {
		if role.ID == id || role.Name == text {
			return role
		}
	}
	return nil
}
