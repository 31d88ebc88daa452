package loot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor   = 0xE67E22
	thumbnailURL = "https://raw.githubusercontent.com/raiderhub/assets/main/scout-badge.png"

	defaultMapName   = "Unknown"
	defaultEventName = "Unknown Event"
	defaultLootDesc  = "No intel available"
	defaultTier      = "Unranked"
)

// RenderReport is pure formatting: hot zone first, then the other maps in
// descending tier order. Missing optional fields get named defaults, it
// never panics on a partial report.
func RenderReport(report *Report, requester string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(report.OtherMaps)+1)

	fields = append(fields, &discordgo.MessageEmbedField{
		Name: fmt.Sprintf("🔥 Hot Zone: %s (%s)", orDefault(report.HotZoneMapName, defaultMapName), TierIV),
		Value: fmt.Sprintf("**Event:** %s\n%s",
			orDefault(report.HotZoneEvent, defaultEventName),
			orDefault(report.HotZoneLootDescription, defaultLootDesc),
		),
	})

	for _, entry := range report.SortedOtherMaps() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s — %s", orDefault(entry.MapName, defaultMapName), orDefault(entry.LootTier, defaultTier)),
			Value: "Event: " + orDefault(entry.EventName, defaultEventName),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Tonight's Loot Forecast",
		Description: "Scout's read on the current rotation, grounded in live raider chatter.",
		Color:       embedColor,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnailURL},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Requested by %s • source: live web search", requester),
		},
		Fields: fields,
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
