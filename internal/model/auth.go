package model

import "time"

// TokenRequest represents a history access token request.
type TokenRequest struct {
	Passphrase string `json:"passphrase"`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	Scopes    []string  `json:"scopes"`
	ExpiresAt time.Time `json:"expires_at"`
}
