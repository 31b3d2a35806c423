package discord

import (
	"testing"

	"server-scribe/internal/catalog"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestCommandText(t *testing.T) {
	require.Equal(t, "**Hello**", commandText(catalog.ContentVariant{Title: "Hello"}))
	require.Equal(t, "**Rules**\nBe nice.", commandText(catalog.ContentVariant{Title: "Rules", Content: "Be nice."}))
}

func TestCommandEmbed(t *testing.T) {
	embed := commandEmbed(
		catalog.Command{IsEmbed: true},
		catalog.ContentVariant{Title: "FAQ", Content: "Read the pins.", Image: "https://example.com/faq.png"},
		0x00C2CB,
	)
	require.Equal(t, "FAQ", embed.Title)
	require.Equal(t, "Read the pins.", embed.Description)
	require.Equal(t, 0x00C2CB, embed.Color)
	require.NotNil(t, embed.Image)
	require.Equal(t, "https://example.com/faq.png", embed.Image.URL)
}

func TestCommandEmbedColorOverride(t *testing.T) {
	embed := commandEmbed(
		catalog.Command{IsEmbed: true, EmbedColor: 0xB01E66},
		catalog.ContentVariant{Title: "FAQ"},
		0x00C2CB,
	)
	require.Equal(t, 0xB01E66, embed.Color)
	require.Nil(t, embed.Image)
}

func TestAuditLine(t *testing.T) {
	author := &discordgo.User{ID: "42", Username: "mod", Discriminator: "0"}
	line := auditLine(author)
	require.Contains(t, line, "Executed by ")
	require.Contains(t, line, " - 42")
}
