package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

func boolPtr(b bool) *bool { return &b }

func newTestGeneratorService(store *fakeStore) *GeneratorService {
	scorer, err := strength.NewScorer(strength.DefaultPolicy())
	if err != nil {
		panic(err)
	}
	if store == nil {
		return NewGeneratorService(nil, scorer, nil)
	}
	return NewGeneratorService(nil, scorer, store)
}

func TestGenerate_Defaults(t *testing.T) {
	store := &fakeStore{}
	svc := newTestGeneratorService(store)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 {
		t.Errorf("expected length 16, got %d", resp.Length)
	}
	if len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	if len(resp.Passwords[0].Password) != 16 {
		t.Errorf("expected password length 16, got %d", len(resp.Passwords[0].Password))
	}
	if resp.Style != "plain" {
		t.Errorf("expected plain style, got %q", resp.Style)
	}
	if resp.Tip == "" {
		t.Error("expected a tip")
	}

	got := store.recorded()
	if len(got) != 1 || got[0].Action != model.ActionGenerated || got[0].Password != resp.Passwords[0].Password {
		t.Errorf("unexpected history: %+v", got)
	}
	if got[0].Strength != resp.Passwords[0].Strength {
		t.Errorf("history strength %q, response strength %q", got[0].Strength, resp.Passwords[0].Strength)
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:    32,
		Count:     3,
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	if len(resp.Passwords) != 3 {
		t.Fatalf("expected 3 passwords, got %d", len(resp.Passwords))
	}
	for _, p := range resp.Passwords {
		for _, c := range p.Password {
			if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
				t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
			}
		}
	}
}

func TestGenerate_RequireEachClassScoresEveryClass(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Length: 20, Count: 5, RequireEachClass: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range resp.Passwords {
		// 40 for length plus 60 for the classes, minus 20 if a denylisted
		// substring happens to appear.
		if p.Score != 100 && p.Score != 80 {
			t.Errorf("password %q scored %d", p.Password, p.Score)
		}
	}
}

func TestGenerate_ScoreIsClamped(t *testing.T) {
	policy := strength.DefaultPolicy()
	policy.Denylist = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	scorer, err := strength.NewScorer(policy)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewGeneratorService(nil, scorer, nil)

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:    3,
		Count:     20,
		Lowercase: boolPtr(false),
		Uppercase: boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range resp.Passwords {
		// 0 for length plus 15 for digits, minus the 20 point penalty.
		if p.RawScore != -5 {
			t.Errorf("password %q: raw score %d, want -5", p.Password, p.RawScore)
		}
		if p.Score != 0 {
			t.Errorf("password %q: score %d, want 0", p.Password, p.Score)
		}
		if p.Strength != "Weak" {
			t.Errorf("password %q: strength %q, want Weak", p.Password, p.Strength)
		}
	}
}

func TestGenerate_StyleTip(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Length: 20, Style: "Funny"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Style != "funny" {
		t.Errorf("expected funny style, got %q", resp.Style)
	}
	if resp.Tip != crypto.Funny.EntropyNote() {
		t.Errorf("styled generation should carry the entropy note, got %q", resp.Tip)
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  model.GenerateRequest
		want error
	}{
		{"length too long", model.GenerateRequest{Length: 200}, crypto.ErrLengthTooLong},
		{"negative length", model.GenerateRequest{Length: -1}, crypto.ErrLengthTooShort},
		{"count too large", model.GenerateRequest{Count: crypto.MaxCount + 1}, crypto.ErrCountTooLarge},
		{"unknown style", model.GenerateRequest{Style: "silly"}, crypto.ErrUnknownStyle},
		{"all classes disabled", model.GenerateRequest{
			Uppercase: boolPtr(false),
			Lowercase: boolPtr(false),
			Numbers:   boolPtr(false),
			Symbols:   boolPtr(false),
		}, crypto.ErrNoCharacterTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := newTestGeneratorService(store).Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, crypto.ErrInvalidPolicy) {
				t.Errorf("expected error to wrap ErrInvalidPolicy, got %v", err)
			}
			if len(store.recorded()) != 0 {
				t.Error("nothing should be recorded on a validation error")
			}
		})
	}
}

func TestGenerate_HistoryFailureWarnsOnce(t *testing.T) {
	store := &fakeStore{recordErr: errors.New("disk full")}
	resp, err := newTestGeneratorService(store).Generate(context.Background(), model.GenerateRequest{Count: 4})
	if err != nil {
		t.Fatalf("history failure must not fail generation: %v", err)
	}
	if len(resp.Passwords) != 4 {
		t.Errorf("expected 4 passwords, got %d", len(resp.Passwords))
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "disk full") {
		t.Errorf("expected a single warning, got %v", resp.Warnings)
	}
}

func TestPolicyFromRequest(t *testing.T) {
	p, err := PolicyFromRequest(model.GenerateRequest{Symbols: boolPtr(false), Style: "casual", RequireEachClass: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Length != 16 || p.Count != 1 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if !p.Lower || !p.Upper || !p.Digit || p.Symbol {
		t.Errorf("unexpected classes: %+v", p)
	}
	if p.Style != crypto.Casual || !p.RequireEachClass {
		t.Errorf("unexpected style options: %+v", p)
	}
}
