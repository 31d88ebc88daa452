package loot

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in       string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"!loot", "loot", []string{}, true},
		{"!LOOT", "loot", []string{}, true},
		{"!loot now please", "loot", []string{"now", "please"}, true},
		{"loot", "", nil, false},
		{"!", "", nil, false},
		{"!   ", "", nil, false},
		{"hello there", "", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			name, args, ok := parseCommand(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantName, name)
			if tc.wantOK {
				assert.Equal(t, tc.wantArgs, args)
			}
		})
	}
}

// spyService records dispatches and optionally blows up mid-command.
type spyService struct {
	calls    []*Command
	panicMsg string
}

func (s *spyService) HandleLootCommand(_ context.Context, cmd *Command) error {
	s.calls = append(s.calls, cmd)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return nil
}

func (s *spyService) SynthesizeReport(context.Context) (*Report, error) { return nil, nil }

func chatMessage(author *discordgo.User, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "chan",
		Content:   content,
		Author:    author,
	}}
}

func TestHandleMessageCreateIgnoresNonCommands(t *testing.T) {
	cases := []struct {
		name string
		msg  *discordgo.MessageCreate
	}{
		{"bot author", chatMessage(&discordgo.User{ID: "u1", Username: "other-bot", Bot: true}, "!loot")},
		{"missing author", &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "chan", Content: "!loot"}}},
		{"no prefix", chatMessage(&discordgo.User{ID: "u1", Username: "raider"}, "loot")},
		{"other command", chatMessage(&discordgo.User{ID: "u1", Username: "raider"}, "!ping")},
		{"plain chatter", chatMessage(&discordgo.User{ID: "u1", Username: "raider"}, "any loot tonight?")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &spyService{}
			out := &spyOutbound{}
			h := NewHandler(svc, out, zap.NewNop().Sugar())

			h.HandleMessageCreate(&discordgo.Session{}, tc.msg)

			assert.Empty(t, svc.calls)
			assert.Empty(t, out.texts)
		})
	}
}

func TestHandleMessageCreateIgnoresOwnMessages(t *testing.T) {
	session := &discordgo.Session{
		State: &discordgo.State{Ready: discordgo.Ready{User: &discordgo.User{ID: "bot-self"}}},
	}
	svc := &spyService{}
	out := &spyOutbound{}
	h := NewHandler(svc, out, zap.NewNop().Sugar())

	h.HandleMessageCreate(session, chatMessage(&discordgo.User{ID: "bot-self", Username: "scout"}, "!loot"))

	assert.Empty(t, svc.calls)
}

func TestHandleMessageCreateDispatchesLoot(t *testing.T) {
	svc := &spyService{}
	out := &spyOutbound{}
	h := NewHandler(svc, out, zap.NewNop().Sugar())

	h.HandleMessageCreate(&discordgo.Session{}, chatMessage(&discordgo.User{ID: "u1", Username: "raider"}, "!loot"))

	require.Len(t, svc.calls, 1)
	cmd := svc.calls[0]
	assert.Equal(t, "loot", cmd.Name)
	assert.Equal(t, "chan", cmd.ChannelID)
	assert.Equal(t, "u1", cmd.RequesterID)
	assert.Equal(t, "raider", cmd.Requester)
	assert.NotEmpty(t, cmd.ID)
}

func TestHandleMessageCreateRecoversFromPanic(t *testing.T) {
	svc := &spyService{panicMsg: "pipeline blew up"}
	out := &spyOutbound{}
	h := NewHandler(svc, out, zap.NewNop().Sugar())

	require.NotPanics(t, func() {
		h.HandleMessageCreate(&discordgo.Session{}, chatMessage(&discordgo.User{ID: "u1", Username: "raider"}, "!loot"))
	})

	require.Len(t, svc.calls, 1)
	require.Len(t, out.texts, 1)
	assert.Equal(t, unexpectedErrorMessage, out.texts[0])
}
