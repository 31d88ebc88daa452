package loot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/raiderhub/arc-loot-bot/internal/ai"
)

type service struct {
	repo     Repo
	ai       ai.AI
	outbound Outbound
	log      *zap.SugaredLogger
	timeout  time.Duration
}

func NewService(repo Repo, aiClient ai.AI, outbound Outbound, log *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		ai:       aiClient,
		outbound: outbound,
		log:      log,
		timeout:  invocationTimeout,
	}
}

const ackMessage = "📡 Scanning raider chatter for tonight's loot intel..."

// Bounds a whole invocation. Without it the worst case is every attempt
// timing out at the full per-request ceiling.
const invocationTimeout = 2 * time.Minute

func (s *service) HandleLootCommand(ctx context.Context, cmd *Command) error {
	s.log.Infof("[svc] id=%s loot command from %s", cmd.ID, cmd.Requester)

	if err := s.outbound.SendText(cmd.ChannelID, ackMessage); err != nil {
		s.log.Warnf("[svc] id=%s ack send failed: %v", cmd.ID, err)
	}

	synthCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.SynthesizeReport(synthCtx)
	if err != nil {
		s.log.Warnf("[svc] id=%s synthesis failed: %v", cmd.ID, err)
		s.saveRecord(ctx, &Record{
			CommandID: cmd.ID,
			Requester: cmd.Requester,
			Outcome:   "error",
			Reason:    err.Error(),
		})
		return s.outbound.SendText(cmd.ChannelID, errorMessage(err))
	}

	s.log.Infof("[svc] id=%s hot zone: %s", cmd.ID, report.HotZoneMapName)
	s.saveRecord(ctx, &Record{
		CommandID: cmd.ID,
		Requester: cmd.Requester,
		Outcome:   "ok",
		HotZone:   report.HotZoneMapName,
	})

	return s.outbound.SendEmbed(cmd.ChannelID, RenderReport(report, cmd.Requester))
}

// SynthesizeReport runs the full pipeline: prompt the model, strip the
// fence, parse, validate. All failures come back as error values.
func (s *service) SynthesizeReport(ctx context.Context) (*Report, error) {
	raw, err := s.ai.GenerateGrounded(ctx, ReportSystemPrompt, ReportUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("report synthesis: %w", err)
	}

	text := StripCodeFence(raw)

	var report Report
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("error parsing or validating response: %v", err)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("error parsing or validating response: %v", err)
	}

	return &report, nil
}

func (s *service) saveRecord(ctx context.Context, rec *Record) {
	if err := s.repo.SaveRecord(ctx, rec); err != nil {
		s.log.Warnf("[svc] id=%s history save failed: %v", rec.CommandID, err)
	}
}

// StripCodeFence removes one surrounding markdown code fence, with an
// optional json tag. Idempotent: a stripped string passes through unchanged.
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

func errorMessage(err error) string {
	reason := strings.ReplaceAll(err.Error(), "`", "'")
	if len(reason) > 300 {
		reason = reason[:300] + "..."
	}
	return "⚠️ Could not assemble the loot report: `" + reason + "`"
}
