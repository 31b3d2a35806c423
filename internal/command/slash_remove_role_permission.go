package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"server-scribe/internal/catalog"
	"server-scribe/internal/core"

	"github.com/bwmarrin/discordgo"
)

type RemoveRolePermissionCommand struct{}

func (c *RemoveRolePermissionCommand) Name() string { return "remove-role-permission" }
func (c *RemoveRolePermissionCommand) Description() string {
	return "Revoke a role's prefix command permission"
}
func (c *RemoveRolePermissionCommand) Aliases() []string  { return []string{} }
func (c *RemoveRolePermissionCommand) RequireAdmin() bool { return true }

func (c *RemoveRolePermissionCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "command",
				Description: "Prefix command name or alias",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Role to revoke",
				Required:    true,
			},
		},
	}
}

var removePermNoConnEmbed = core.Embed(
	"Prefix Commands - Remove Role Permission - No Connection",
	"Could not connect to the database. Unable to remove the prefix command role permission.",
	core.ColorRed,
)

func removePermNoCommandEmbed(command string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Remove Role Permission - No Command",
		fmt.Sprintf("Failed to remove the prefix command role permission for command %s as the command does not exist or there are more than one matching.", command),
		core.ColorRed,
	)
}

func removePermFailedEmbed(command, roleName, permType string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Remove Role Permission - Failed",
		fmt.Sprintf("Failed to remove the %s prefix command role permission for command %s and role %s.", permType, command, roleName),
		core.ColorRed,
	)
}

// Title kept as the source wrote it, description carries the real meaning.
func removePermDoesNotExistEmbed(command, roleName string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Remove Role Permission - Already exists",
		fmt.Sprintf("A prefix command role permission for command %s and role %s does not exist.", command, roleName),
		core.ColorRed,
	)
}

func removePermSuccessEmbed(command, roleName, permType string) *discordgo.MessageEmbed {
	return core.Embed(
		fmt.Sprintf("Prefix command role %s permission removed for command %s and role %s.", permType, command, roleName),
		"",
		core.ColorGreen,
	)
}

var removePermNoModLogsEmbed = core.Embed(
	"Prefix Commands - Remove Role Permission - No Mod Log",
	"I can't find the mod logs channel. Please check the channel still exists.",
	core.ColorRed,
)

func removePermModLogEmbed(moderator *discordgo.User, command, roleName, permType string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Remove prefix command role permission",
		Fields: []*discordgo.MessageEmbedField{
			core.EmbedField("Command", command),
			core.EmbedField("Role", roleName),
			core.EmbedField("Type", permType),
			core.EmbedField("Moderator", moderator.Mention()),
		},
		Color: core.ColorGreen,
	}
}

func (c *RemoveRolePermissionCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	e := slash.Event
	store := slash.Catalog

	if err := core.RespondDeferredEphemeral(s, e); err != nil {
		return err
	}

	reqCtx := context.Background()
	if err := store.Ping(reqCtx); err != nil {
		return core.FollowUpEmbed(s, e, removePermNoConnEmbed)
	}

	opts := optionMap(e)
	commandText := opts["command"].StringValue()
	role := opts["role"].RoleValue(s, e.GuildID)
	moderator := e.Member.User

	modLogs := resolveModLogsChannel(s, slash.Config)
	if modLogs == nil {
		_ = core.FollowUpEmbed(s, e, removePermNoModLogsEmbed)
	}

	found, err := store.ResolveCommand(reqCtx, commandText)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return core.FollowUpEmbed(s, e, removePermNoCommandEmbed(commandText))
		}
		return err
	}

	perm, err := store.RolePermissionFor(reqCtx, found.ID, role.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		return core.FollowUpEmbed(s, e, removePermDoesNotExistEmbed(commandText, role.Name))
	}
	if err != nil {
		return err
	}

	if err := store.RemoveRolePermission(reqCtx, found.ID, role.ID); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		log.Printf("[ERR] Failed to remove %s prefix command role permission for command %s and role %s: %v", perm.Type, commandText, role.Name, err)
		return core.FollowUpEmbed(s, e, removePermFailedEmbed(commandText, role.Name, perm.Type))
	}

	if err := core.FollowUpEmbed(s, e, removePermSuccessEmbed(commandText, role.Name, perm.Type)); err != nil {
		return err
	}

	refreshCachedCommand(reqCtx, slash, found.ID)
	sendModLog(s, modLogs, removePermModLogEmbed(moderator, commandText, role.Name, perm.Type))
	return nil
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&RemoveRolePermissionCommand{},
			core.WithGuildOnly(),
			core.WithCommandLogger(),
		),
	)
}
