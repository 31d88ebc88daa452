package loot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// DiscordOutbound adapts the bot session to the Outbound port.
type DiscordOutbound struct {
	session *discordgo.Session
	log     *zap.SugaredLogger
}

func NewDiscordOutbound(session *discordgo.Session, log *zap.SugaredLogger) *DiscordOutbound {
	return &DiscordOutbound{session: session, log: log}
}

func (o *DiscordOutbound) SendText(channelID string, text string) error {
	if _, err := o.session.ChannelMessageSend(channelID, text); err != nil {
		o.log.Warnf("[discord] send to %s failed: %v", channelID, err)
		return fmt.Errorf("discord send: %w", err)
	}
	return nil
}

func (o *DiscordOutbound) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	if _, err := o.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		o.log.Warnf("[discord] embed send to %s failed: %v", channelID, err)
		return fmt.Errorf("discord embed send: %w", err)
	}
	return nil
}
