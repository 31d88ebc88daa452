package loot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Command — one parsed chat command, boundary input from Discord.
type Command struct {
	ID          string // correlation id for logs and history
	Name        string
	Args        []string
	ChannelID   string
	RequesterID string
	Requester   string // display name for the embed footer
}

// Record — one synthesis outcome kept for the status page.
type Record struct {
	ID        int64
	CommandID string
	Requester string
	Outcome   string // "ok" | "error"
	HotZone   string
	Reason    string
	CreatedAt int64
}

type Outbound interface {
	SendText(channelID string, text string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// Repo — persistence for report history. May be a no-op.
type Repo interface {
	SaveRecord(ctx context.Context, rec *Record) error
	RecentRecords(ctx context.Context, limit int) ([]Record, error)
}

// Service — orchestration
type Service interface {
	HandleLootCommand(ctx context.Context, cmd *Command) error
	SynthesizeReport(ctx context.Context) (*Report, error)
}
