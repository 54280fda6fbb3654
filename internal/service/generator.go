package service

import (
	"context"
	"time"

	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

const generateTip = "Use a different password for every account and keep them in a password manager."

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen    *crypto.Generator
	scorer *strength.Scorer
	store  history.Store
	now    func() time.Time
}

// NewGeneratorService creates a new GeneratorService. A nil generator uses
// crypto/rand and a nil store keeps no history.
func NewGeneratorService(gen *crypto.Generator, scorer *strength.Scorer, store history.Store) *GeneratorService {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	if store == nil {
		store = history.Discard{}
	}
	return &GeneratorService{gen: gen, scorer: scorer, store: store, now: time.Now}
}

// PolicyFromRequest converts a request into a generation policy. Missing
// class switches default to enabled, a zero length to 16 and a zero count to 1.
func PolicyFromRequest(req model.GenerateRequest) (crypto.Policy, error) {
	style, err := crypto.ParseStyle(req.Style)
	if err != nil {
		return crypto.Policy{}, err
	}

	p := crypto.DefaultPolicy()
	if req.Length != 0 {
		p.Length = req.Length
	}
	if req.Count != 0 {
		p.Count = req.Count
	}
	p.Lower = boolOrDefault(req.Lowercase, true)
	p.Upper = boolOrDefault(req.Uppercase, true)
	p.Digit = boolOrDefault(req.Numbers, true)
	p.Symbol = boolOrDefault(req.Symbols, true)
	p.Style = style
	p.RequireEachClass = req.RequireEachClass
	return p, nil
}

// Generate produces passwords for the request, scores each one and records
// it as Generated.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	policy, err := PolicyFromRequest(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	passwords, err := s.gen.Generate(policy)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Passwords: make([]model.GeneratedPassword, 0, len(passwords)),
		Length:    policy.Length,
		Style:     policy.Style.String(),
		Tip:       generateTip,
	}
	if note := policy.Style.EntropyNote(); note != "" {
		resp.Tip = note
	}

	var recordFailed bool
	for _, pw := range passwords {
		result, err := s.scorer.Score(pw)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		label := result.Category.String()
		resp.Passwords = append(resp.Passwords, model.GeneratedPassword{
			Password: pw,
			Strength: label,
			Score:    result.DisplayScore(),
			RawScore: result.Score,
		})

		if recordFailed {
			continue
		}
		entry := model.HistoryEntry{Time: s.now(), Action: model.ActionGenerated, Password: pw, Strength: label}
		if warning := record(ctx, s.store, entry); warning != "" {
			resp.Warnings = append(resp.Warnings, warning)
			recordFailed = true
		}
	}

	return resp, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
