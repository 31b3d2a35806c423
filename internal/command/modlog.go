package command

import (
	"log"

	"server-scribe/internal/config"

	"github.com/bwmarrin/discordgo"
)

// resolveModLogsChannel resolves the configured mod-log destination. The
// channel is a non-blocking side channel: a nil result must never stop the
// primary action, the caller only tells the invoker once that logging is
// unavailable.
func resolveModLogsChannel(s *discordgo.Session, cfg *config.Config) *discordgo.Channel {
	if cfg == nil || cfg.ModLogsChannelID == "" {
		return nil
	}
	channel, err := s.State.Channel(cfg.ModLogsChannelID)
	if err != nil {
		channel, err = s.Channel(cfg.ModLogsChannelID)
		if err != nil {
			return nil
		}
	}
	return channel
}

// sendModLog delivers an audit embed best effort. Delivery failure is logged
// and never surfaces to the invoker.
func sendModLog(s *discordgo.Session, channel *discordgo.Channel, embed *discordgo.MessageEmbed) {
	if channel == nil {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("[ERR] Failed to post a message to the mod logs channel: %v", err)
	}
}
