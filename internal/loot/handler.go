package loot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const commandPrefix = "!"

const unexpectedErrorMessage = "Something unexpected went wrong. Try again in a bit."

// Handler — the Discord command boundary. Exactly one command, "loot".
type Handler struct {
	svc      Service
	outbound Outbound
	log      *zap.SugaredLogger
}

func NewHandler(svc Service, outbound Outbound, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, outbound: outbound, log: log}
}

// HandleMessageCreate is registered on the Discord session. A panic in the
// pipeline is caught here; one bad command must never take the bot down.
func (h *Handler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	name, args, ok := parseCommand(m.Content)
	if !ok || name != "loot" {
		return
	}

	cmd := &Command{
		ID:          uuid.NewString(),
		Name:        name,
		Args:        args,
		ChannelID:   m.ChannelID,
		RequesterID: m.Author.ID,
		Requester:   displayName(m),
	}

	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf("[handler] id=%s panic in loot command: %v", cmd.ID, r)
			_ = h.outbound.SendText(m.ChannelID, unexpectedErrorMessage)
		}
	}()

	if err := h.svc.HandleLootCommand(context.Background(), cmd); err != nil {
		h.log.Errorf("[handler] id=%s loot command failed: %v", cmd.ID, err)
	}
}

// parseCommand splits a raw chat line into command name + args. Lines
// without the prefix, or a bare prefix, are not commands.
func parseCommand(content string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, commandPrefix) {
		return "", nil, false
	}
	parts := strings.Fields(strings.TrimPrefix(content, commandPrefix))
	if len(parts) == 0 {
		return "", nil, false
	}
	return strings.ToLower(parts[0]), parts[1:], true
}

func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}
