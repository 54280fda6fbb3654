package model

import "github.com/vaultpass/passcheck-go/internal/strength"

// CheckRequest represents a password strength check request.
// GuessesPerSecond is optional; zero selects the configured rate.
type CheckRequest struct {
	Password         string  `json:"password"`
	GuessesPerSecond float64 `json:"guesses_per_second"`
}

// CrackTimeResponse is the brute-force estimate of a check.
type CrackTimeResponse struct {
	Label            string  `json:"label"`
	Unit             string  `json:"unit"`
	Value            float64 `json:"value"`
	Log10Seconds     float64 `json:"log10_seconds"`
	Uncrackable      bool    `json:"uncrackable"`
	CharsetSize      int     `json:"charset_size"`
	Length           int     `json:"length"`
	GuessesPerSecond float64 `json:"guesses_per_second"`
}

// AdvisoryResponse is the pattern-aware zxcvbn estimate. It never affects
// the heuristic score or category.
type AdvisoryResponse struct {
	Score   int     `json:"score"`
	Entropy float64 `json:"entropy"`
}

// CheckResponse represents a password strength check response.
type CheckResponse struct {
	Score     int                  `json:"score"`
	RawScore  int                  `json:"raw_score"`
	MaxScore  int                  `json:"max_score"`
	Strength  string               `json:"strength"`
	Category  strength.Category    `json:"category"`
	Criteria  []strength.Criterion `json:"criteria"`
	Feedback  []string             `json:"feedback"`
	CrackTime CrackTimeResponse    `json:"crack_time"`
	Advisory  *AdvisoryResponse    `json:"advisory,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
}
