package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ccojocar/zxcvbn-go"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

// maxAdvisoryLen limits the input to zxcvbn, whose matching cost grows with
// the password length.
const maxAdvisoryLen = 50

// CheckService scores passwords and records them in the history.
type CheckService struct {
	scorer           *strength.Scorer
	store            history.Store
	guessesPerSecond float64
	now              func() time.Time
}

// NewCheckService creates a new CheckService. A nil store keeps no history.
func NewCheckService(scorer *strength.Scorer, store history.Store, guessesPerSecond float64) *CheckService {
	if store == nil {
		store = history.Discard{}
	}
	if guessesPerSecond == 0 {
		guessesPerSecond = strength.DefaultGuessesPerSecond
	}
	return &CheckService{
		scorer:           scorer,
		store:            store,
		guessesPerSecond: guessesPerSecond,
		now:              time.Now,
	}
}

// Check scores the password, estimates its crack time and records it as
// Checked. A failed history write is returned as a warning, not an error.
func (s *CheckService) Check(ctx context.Context, req model.CheckRequest) (model.CheckResponse, error) {
	result, err := s.scorer.Score(req.Password)
	if err != nil {
		return model.CheckResponse{}, err
	}

	gps := req.GuessesPerSecond
	if gps == 0 {
		gps = s.guessesPerSecond
	}
	crack, err := strength.EstimateCrackTime(req.Password, gps)
	if err != nil {
		return model.CheckResponse{}, err
	}

	resp := model.CheckResponse{
		Score:     result.DisplayScore(),
		RawScore:  result.Score,
		MaxScore:  result.MaxScore,
		Strength:  result.Category.String(),
		Category:  result.Category,
		Criteria:  result.Criteria,
		Feedback:  result.Feedback(),
		CrackTime: crackTimeResponse(crack),
		Advisory:  advisory(req.Password),
	}

	entry := model.HistoryEntry{
		Time:     s.now(),
		Action:   model.ActionChecked,
		Password: req.Password,
		Strength: resp.Strength,
	}
	if warning := record(ctx, s.store, entry); warning != "" {
		resp.Warnings = append(resp.Warnings, warning)
	}

	return resp, nil
}

func crackTimeResponse(c strength.CrackTime) model.CrackTimeResponse {
	return model.CrackTimeResponse{
		Label:            c.String(),
		Unit:             string(c.Unit),
		Value:            c.Value,
		Log10Seconds:     c.Log10Seconds,
		Uncrackable:      c.Uncrackable,
		CharsetSize:      c.CharsetSize,
		Length:           c.Length,
		GuessesPerSecond: c.GuessesPerSecond,
	}
}

func advisory(password string) *model.AdvisoryResponse {
	runes := []rune(password)
	if len(runes) > maxAdvisoryLen {
		runes = runes[:maxAdvisoryLen]
	}
	m := zxcvbn.PasswordStrength(string(runes), nil)
	return &model.AdvisoryResponse{Score: m.Score, Entropy: m.Entropy}
}

// record writes e to store and turns a failure into a user-facing warning.
func record(ctx context.Context, store history.Store, e model.HistoryEntry) string {
	if err := store.Record(ctx, e); err != nil {
		slog.Warn("history record failed", "action", e.Action, "error", err)
		return "could not save to history: " + err.Error()
	}
	return ""
}
