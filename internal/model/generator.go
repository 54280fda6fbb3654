package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int    `json:"length"`
	Count            int    `json:"count"`
	Style            string `json:"style"`
	Uppercase        *bool  `json:"uppercase"`
	Lowercase        *bool  `json:"lowercase"`
	Numbers          *bool  `json:"numbers"`
	Symbols          *bool  `json:"symbols"`
	RequireEachClass bool   `json:"require_each_class"`
}

// GeneratedPassword is one generated password with its heuristic strength.
// Score is clamped for display. RawScore is the unclamped heuristic score.
type GeneratedPassword struct {
	Password string `json:"password"`
	Strength string `json:"strength"`
	Score    int    `json:"score"`
	RawScore int    `json:"raw_score"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
	Length    int                 `json:"length"`
	Style     string              `json:"style"`
	Tip       string              `json:"tip"`
	Warnings  []string            `json:"warnings,omitempty"`
}
