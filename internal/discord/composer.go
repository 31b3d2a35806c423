package discord

import (
	"errors"
	"fmt"

	"server-scribe/internal/catalog"

	"github.com/bwmarrin/discordgo"
)

var errNoReference = errors.New("message is not a reply")

// reply sends exactly one outgoing message for a resolved prefix command.
func (b *Bot) reply(s *discordgo.Session, m *discordgo.Message, res Resolution) error {
	if res.Command.IsEmbed {
		return replyWithEmbed(s, m, commandEmbed(res.Command, res.Content, b.cfg.DefaultEmbedColor))
	}
	return replyWithText(s, m, commandText(res.Content))
}

// commandEmbed builds the embed payload for an embed-style command, falling
// back to defaultColor when the command specifies none.
func commandEmbed(cmd catalog.Command, content catalog.ContentVariant, defaultColor int) *discordgo.MessageEmbed {
	color := cmd.EmbedColor
	if color == 0 {
		color = defaultColor
	}
	embed := &discordgo.MessageEmbed{
		Title:       content.Title,
		Description: content.Content,
		Color:       color,
	}
	if content.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: content.Image}
	}
	return embed
}

// commandText builds the plain-text payload: the title emphasized on its own
// line, then the content text if any.
func commandText(content catalog.ContentVariant) string {
	text := "**" + content.Title + "**"
	if content.Content != "" {
		text += "\n" + content.Content
	}
	return text
}

// auditLine identifies who triggered the command.
func auditLine(author *discordgo.User) string {
	return fmt.Sprintf("Executed by %s - %s", author.String(), author.ID)
}

// replyWithEmbed replies into the thread of the message the trigger replied
// to, stamping the audit into the footer; if the trigger is not itself a
// reply (or its reference is gone) it replies to the trigger directly with
// the embed unchanged.
func replyWithEmbed(s *discordgo.Session, m *discordgo.Message, embed *discordgo.MessageEmbed) error {
	target, err := referencedMessage(s, m)
	if err != nil {
		return sendEmbedReply(s, m, embed)
	}

	stamped := *embed
	footer := auditLine(m.Author)
	if embed.Footer != nil && embed.Footer.Text != "" {
		footer = embed.Footer.Text + "\n\n" + footer
	}
	stamped.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return sendEmbedReply(s, target, &stamped)
}

// replyWithText replies into the thread of the referenced message when the
// trigger is itself a reply, directly to the trigger otherwise. The audit
// line rides along as a trailing backticked line either way, since plain
// text has no footer to carry it.
func replyWithText(s *discordgo.Session, m *discordgo.Message, text string) error {
	target := m
	if ref, err := referencedMessage(s, m); err == nil {
		target = ref
	}
	text += "\n\n`" + auditLine(m.Author) + "`"

	_, err := s.ChannelMessageSendComplex(target.ChannelID, &discordgo.MessageSend{
		Content:   text,
		Reference: target.Reference(),
	})
	return err
}

func sendEmbedReply(s *discordgo.Session, target *discordgo.Message, embed *discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageSendComplex(target.ChannelID, &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Reference: target.Reference(),
	})
	return err
}

// referencedMessage fetches the message the trigger is replying to. Repeated
// invocations thread off the original target instead of chaining off each
// invocation.
func referencedMessage(s *discordgo.Session, m *discordgo.Message) (*discordgo.Message, error) {
	ref := m.MessageReference
	if ref == nil || ref.MessageID == "" {
		return nil, errNoReference
	}
	channelID := ref.ChannelID
	if channelID == "" {
		channelID = m.ChannelID
	}
	return s.ChannelMessage(channelID, ref.MessageID)
}
