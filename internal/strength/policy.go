package strength

import (
	"errors"
	"fmt"
)

// Category is a strength band. Categories are ordered: Weak < Medium < Strong < VeryStrong.
type Category int

const (
	Weak Category = iota
	Medium
	Strong
	VeryStrong
)

// String returns the display label of the category.
func (c Category) String() string {
	switch c {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Bands holds the lowest raw score of each band above Weak.
type Bands struct {
	Medium     int
	Strong     int
	VeryStrong int
}

// Policy is the scoring table used by a Scorer.
type Policy struct {
	// MidLength and StrongLength are the rune counts at which the length
	// criterion starts awarding MidLengthPoints and MaxLengthPoints.
	MidLength       int
	StrongLength    int
	MidLengthPoints int
	MaxLengthPoints int

	// ClassPoints is awarded once per character class present.
	ClassPoints int

	// PatternPenalty is subtracted once if any Denylist entry occurs in
	// the lowercased password. Entries must be lowercase.
	PatternPenalty int
	Denylist       []string

	Bands Bands
}

var ErrInvalidScoringPolicy = errors.New("invalid scoring policy")

// DefaultPolicy returns the standard 0-100 scoring table.
func DefaultPolicy() Policy {
	return Policy{
		MidLength:       8,
		StrongLength:    12,
		MidLengthPoints: 25,
		MaxLengthPoints: 40,
		ClassPoints:     15,
		PatternPenalty:  20,
		Denylist: []string{
			"123", "abc", "password", "qwerty", "letmein",
			"admin", "welcome", "iloveyou", "111", "000",
		},
		Bands: Bands{
			Medium:     40,
			Strong:     65,
			VeryStrong: 85,
		},
	}
}

// MaxScore is the highest raw score the policy can award.
func (p Policy) MaxScore() int {
	return p.MaxLengthPoints + 4*p.ClassPoints
}

// Category maps a raw score onto its band. Scores below zero are Weak.
func (p Policy) Category(score int) Category {
	switch {
	case score >= p.Bands.VeryStrong:
		return VeryStrong
	case score >= p.Bands.Strong:
		return Strong
	case score >= p.Bands.Medium:
		return Medium
	default:
		return Weak
	}
}

// Validate checks that thresholds and bands are strictly increasing.
func (p Policy) Validate() error {
	if p.MidLength < 1 || p.StrongLength <= p.MidLength {
		return fmt.Errorf("%w: length thresholds must satisfy 0 < mid < strong", ErrInvalidScoringPolicy)
	}
	if p.Bands.Medium >= p.Bands.Strong || p.Bands.Strong >= p.Bands.VeryStrong {
		return fmt.Errorf("%w: bands must be strictly increasing", ErrInvalidScoringPolicy)
	}
	if p.PatternPenalty < 0 {
		return fmt.Errorf("%w: pattern penalty must not be negative", ErrInvalidScoringPolicy)
	}
	return nil
}
