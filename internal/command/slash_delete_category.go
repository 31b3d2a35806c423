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

type DeleteCategoryCommand struct{}

func (c *DeleteCategoryCommand) Name() string        { return "delete-category" }
func (c *DeleteCategoryCommand) Description() string { return "Delete a prefix command category" }
func (c *DeleteCategoryCommand) Aliases() []string   { return []string{} }
func (c *DeleteCategoryCommand) RequireAdmin() bool  { return true }

func (c *DeleteCategoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Category id",
				Required:    true,
			},
		},
	}
}

var deleteCategoryNoConnEmbed = core.Embed(
	"Prefix Commands - Delete Category - No Connection",
	"Could not connect to the database. Unable to delete the prefix command category.",
	core.ColorRed,
)

func deleteCategoryFailedEmbed(categoryID string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Delete Category - Failed",
		fmt.Sprintf("Failed to delete the prefix command category with id %s.", categoryID),
		core.ColorRed,
	)
}

func deleteCategoryDoesNotExistEmbed(categoryID string) *discordgo.MessageEmbed {
	return core.Embed(
		"Prefix Commands - Delete Category - Does not exist",
		fmt.Sprintf("The prefix command category with id %s does not exists. Can not delete it.", categoryID),
		core.ColorRed,
	)
}

func deleteCategorySuccessEmbed(category, categoryID string) *discordgo.MessageEmbed {
	return core.Embed(
		fmt.Sprintf("Prefix command category %s (%s) was deleted successfully.", category, categoryID),
		"",
		core.ColorGreen,
	)
}

var deleteCategoryNoModLogsEmbed = core.Embed(
	"Prefix Commands - Delete Category - No Mod Log",
	"I can't find the mod logs channel. Please check the channel still exists.",
	core.ColorRed,
)

func deleteCategoryModLogEmbed(moderator *discordgo.User, category, emoji, categoryID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Prefix command category deleted",
		Fields: []*discordgo.MessageEmbedField{
			core.EmbedField("Category", category),
			core.EmbedField("Moderator", moderator.Mention()),
			core.EmbedField("Emoji", emoji),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Category ID: %s", categoryID),
		},
		Color: core.ColorRed,
	}
}

func (c *DeleteCategoryCommand) Run(ctx interface{}) error {
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
		return core.FollowUpEmbed(s, e, deleteCategoryNoConnEmbed)
	}

	opts := optionMap(e)
	categoryID := opts["id"].StringValue()
	moderator := e.Member.User

	modLogs := resolveModLogsChannel(s, slash.Config)
	if modLogs == nil {
		_ = core.FollowUpEmbed(s, e, deleteCategoryNoModLogsEmbed)
	}

	category, err := store.Category(reqCtx, categoryID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return core.FollowUpEmbed(s, e, deleteCategoryDoesNotExistEmbed(categoryID))
		}
		return err
	}

	if err := store.DeleteCategory(reqCtx, categoryID); err != nil {
		log.Printf("[ERR] Failed to delete a prefix command category with id %s: %v", categoryID, err)
		return core.FollowUpEmbed(s, e, deleteCategoryFailedEmbed(categoryID))
	}

	if err := core.FollowUpEmbed(s, e, deleteCategorySuccessEmbed(category.Name, categoryID)); err != nil {
		return err
	}

	sendModLog(s, modLogs, deleteCategoryModLogEmbed(moderator, category.Name, category.Emoji, categoryID))
	return nil
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&DeleteCategoryCommand{},
			core.WithGuildOnly(),
			core.WithCommandLogger(),
		),
	)
}
