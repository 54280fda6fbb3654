// Package strength scores passwords and estimates brute-force crack time.
//
// Both operations are pure functions of the password: no I/O, no randomness,
// no shared state. They are safe for concurrent use.
package strength

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrEmptyInput = errors.New("password must not be empty")

// Criterion names, in evaluation order.
const (
	CriterionLength    = "length"
	CriterionLowercase = "lowercase"
	CriterionUppercase = "uppercase"
	CriterionDigit     = "digit"
	CriterionSymbol    = "symbol"
	CriterionPattern   = "pattern"
)

// ClassFlags records which character classes occur in a password.
type ClassFlags struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Count returns the number of classes present.
func (f ClassFlags) Count() int {
	n := 0
	for _, b := range []bool{f.Lower, f.Upper, f.Digit, f.Symbol} {
		if b {
			n++
		}
	}
	return n
}

// Classes scans password once. Any rune that is not a lowercase letter,
// uppercase letter or digit counts as a symbol, whitespace included.
func Classes(password string) ClassFlags {
	var f ClassFlags
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			f.Lower = true
		case unicode.IsUpper(r):
			f.Upper = true
		case unicode.IsDigit(r):
			f.Digit = true
		default:
			f.Symbol = true
		}
	}
	return f
}

// Criterion is the outcome of one scoring check.
type Criterion struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

// Result is the immutable outcome of scoring a password.
type Result struct {
	// Score is the raw point total. The pattern penalty can make it negative.
	Score    int
	MaxScore int
	Category Category
	Classes  ClassFlags
	Criteria []Criterion
}

// Feedback returns one message per criterion in evaluation order.
func (r Result) Feedback() []string {
	out := make([]string, len(r.Criteria))
	for i, c := range r.Criteria {
		out[i] = c.Message
	}
	return out
}

// DisplayScore clamps Score into [0, MaxScore] for presentation.
func (r Result) DisplayScore() int {
	return min(max(r.Score, 0), r.MaxScore)
}

// Scorer scores passwords against a fixed policy.
type Scorer struct {
	policy Policy
}

// NewScorer returns a Scorer for the given policy.
func NewScorer(p Policy) (*Scorer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	deny := make([]string, len(p.Denylist))
	for i, s := range p.Denylist {
		deny[i] = strings.ToLower(s)
	}
	p.Denylist = deny
	return &Scorer{policy: p}, nil
}

var defaultScorer = &Scorer{policy: DefaultPolicy()}

// Score scores password with DefaultPolicy.
func Score(password string) (Result, error) {
	return defaultScorer.Score(password)
}

// Policy returns the scorer's table.
func (s *Scorer) Policy() Policy {
	return s.policy
}

// Score evaluates password. Criteria are evaluated in the order length,
// lowercase, uppercase, digit, symbol, pattern.
func (s *Scorer) Score(password string) (Result, error) {
	if password == "" {
		return Result{}, ErrEmptyInput
	}

	p := s.policy
	flags := Classes(password)
	criteria := make([]Criterion, 0, 6)
	total := 0

	length := utf8.RuneCountInString(password)
	lc := Criterion{Name: CriterionLength}
	switch {
	case length < p.MidLength:
		lc.Message = fmt.Sprintf("Length %d: too short (use at least %d characters)", length, p.MidLength)
	case length < p.StrongLength:
		lc.Passed = true
		lc.Points = p.MidLengthPoints
		lc.Message = fmt.Sprintf("Length %d: good", length)
	default:
		lc.Passed = true
		lc.Points = p.MaxLengthPoints
		lc.Message = fmt.Sprintf("Length %d: strong", length)
	}
	criteria = append(criteria, lc)
	total += lc.Points

	classes := []struct {
		name    string
		present bool
		label   string
	}{
		{CriterionLowercase, flags.Lower, "lowercase letters"},
		{CriterionUppercase, flags.Upper, "uppercase letters"},
		{CriterionDigit, flags.Digit, "digits"},
		{CriterionSymbol, flags.Symbol, "symbols"},
	}
	for _, c := range classes {
		cr := Criterion{Name: c.name, Passed: c.present}
		if c.present {
			cr.Points = p.ClassPoints
			cr.Message = "Has " + c.label
		} else {
			cr.Message = "No " + c.label
		}
		criteria = append(criteria, cr)
		total += cr.Points
	}

	pc := Criterion{Name: CriterionPattern, Passed: true, Message: "No common patterns found"}
	if found := s.commonPatterns(password); len(found) > 0 {
		pc.Passed = false
		pc.Points = -p.PatternPenalty
		pc.Message = "Contains common pattern: " + strings.Join(found, ", ")
	}
	criteria = append(criteria, pc)
	total += pc.Points

	return Result{
		Score:    total,
		MaxScore: p.MaxScore(),
		Category: p.Category(total),
		Classes:  flags,
		Criteria: criteria,
	}, nil
}

// commonPatterns returns the denylist entries found in password, in denylist order.
func (s *Scorer) commonPatterns(password string) []string {
	lower := strings.ToLower(password)
	var found []string
	for _, pat := range s.policy.Denylist {
		if pat != "" && strings.Contains(lower, pat) {
			found = append(found, pat)
		}
	}
	return found
}
