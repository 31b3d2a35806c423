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

type AddRolePermissionCommand struct{}

func (c *AddRolePermissionCommand) Name() string        { return "add-role-permission" }
func (c *AddRolePermissionCommand) Description() string { return "Allow a role to use a prefix command" }
func (c *AddRolePermissionCommand) Aliases() []string   { return []string{} }
func (c *AddRolePermissionCommand) RequireAdmin() bool  { return true }

func (c *AddRolePermissionCommand) SlashDefinition() *discordgo.ApplicationCommand {
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
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "role",
				Description: "Role id or mention",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Permission type tag",
				Required:    true,
			},
		},
	}
}

var addPermNoConnEmbed = core.Embed(
	"Prefix Commands - Add Role Permission - No Connection",
	"Could not connect to the database. Unable to add the prefix command role permission.",
	core.ColorRed,
)

func addPermNoCommandEmbed(command string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Add Role Permission - No Command",
		fmt.Sprintf("Failed to add the prefix command role permission for command %s as the command does not exist or there are more than one matching.", command),
		core.ColorRed,
	)
}

func addPermNoRoleEmbed(role string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Add Role Permission - No Role",
		fmt.Sprintf("Failed to add the prefix command role permission for role %s as the role does not exist.", role),
		core.ColorRed,
	)
}

func addPermFailedEmbed(command, roleName, permType string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Add Role Permission - Failed",
		fmt.Sprintf("Failed to add the %s prefix command role permission for command %s and role %s.", permType, command, roleName),
		core.ColorRed,
	)
}

func addPermAlreadyExistsEmbed(command, roleName string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Add Role Permission - Already exists",
		fmt.Sprintf("A prefix command role permission for command %s and role %s already exists. Not adding again.", command, roleName),
		core.ColorRed,
	)
}

func addPermSuccessEmbed(command, roleName, permType, permissionID string) *discordgo.MessageEmbed {
	return core.Embed(
		fmt.Sprintf("Prefix command role %s permission added for command %s and role %s. RolePermission ID: %s", permType, command, roleName, permissionID),
		"",
		core.ColorGreen,
	)
}

var addPermNoModLogsEmbed = core.Embed(
	"Prefix Commands - Add Role Permission - No Mod Log",
	"I can't find the mod logs channel. Please check the channel still exists.",
	core.ColorRed,
)

func addPermModLogEmbed(moderator *discordgo.User, command, roleName, permType, commandID, permissionID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Add prefix command role permission",
		Fields: []*discordgo.MessageEmbedField{
			core.EmbedField("Command", command),
			core.EmbedField("Role", roleName),
			core.EmbedField("Type", permType),
			core.EmbedField("Moderator", moderator.Mention()),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Command ID: %s - Role Permission ID: %s", commandID, permissionID),
		},
		Color: core.ColorGreen,
	}
}

func (c *AddRolePermissionCommand) Run(ctx interface{}) error {
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
		return core.FollowUpEmbed(s, e, addPermNoConnEmbed)
	}

	opts := optionMap(e)
	commandText := opts["command"].StringValue()
	roleText := opts["role"].StringValue()
	permType := opts["type"].StringValue()
	moderator := e.Member.User

	modLogs := resolveModLogsChannel(s, slash.Config)
	if modLogs == nil {
		_ = core.FollowUpEmbed(s, e, addPermNoModLogsEmbed)
	}

	found, err := store.ResolveCommand(reqCtx, commandText)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return core.FollowUpEmbed(s, e, addPermNoCommandEmbed(commandText))
		}
		return err
	}

	role := resolveRole(s, e.GuildID, roleText)
	if role == nil {
		return core.FollowUpEmbed(s, e, addPermNoRoleEmbed(roleText))
	}

	perm, err := store.AddRolePermission(reqCtx, found.ID, role.ID, permType)
	if errors.Is(err, catalog.ErrExists) {
		return core.FollowUpEmbed(s, e, addPermAlreadyExistsEmbed(commandText, role.Name))
	}
	if err != nil {
		log.Printf("[ERR] Failed to add %s prefix command role permission for command %s and role %s: %v", permType, commandText, role.Name, err)
		return core.FollowUpEmbed(s, e, addPermFailedEmbed(commandText, role.Name, permType))
	}

	if err := core.FollowUpEmbed(s, e, addPermSuccessEmbed(commandText, role.Name, permType, perm.ID)); err != nil {
		return err
	}

	refreshCachedCommand(reqCtx, slash, found.ID)
	sendModLog(s, modLogs, addPermModLogEmbed(moderator, commandText, role.Name, permType, found.ID, perm.ID))
	return nil
}

// refreshCachedCommand write-through updates the catalog mirror after a
// permission mutation so the resolver does not serve a stale snapshot until
// the next periodic refresh.
func refreshCachedCommand(ctx context.Context, slash *core.SlashInteractionContext, commandID string) {
	if slash.Cache == nil {
		return
	}
	updated, err := slash.Catalog.CommandByID(ctx, commandID)
	if err != nil {
		log.Printf("[WARN] Failed to refresh cached command %s: %v", commandID, err)
		return
	}
	if err := slash.Cache.PutCommand(updated); err != nil {
		log.Printf("[WARN] Failed to refresh cached command %s: %v", commandID, err)
	}
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&AddRolePermissionCommand{},
			core.WithGuildOnly(),
			core.WithCommandLogger(),
		),
	)
}
