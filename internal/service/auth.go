package service

import (
	"context"
	"errors"
	"time"

	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/model"
)

const tokenSubject = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid passphrase")
	ErrPassphraseRequired = errors.New("passphrase is required")
	ErrAuthDisabled       = errors.New("history access is disabled: no admin passphrase configured")
)

// AuthService issues history access tokens to holders of the admin passphrase.
type AuthService struct {
	passphraseHash string
	jwtSecret      string
	jwtExpiry      time.Duration
}

// NewAuthService creates a new AuthService. An empty passphraseHash disables
// token issuance.
func NewAuthService(passphraseHash, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		passphraseHash: passphraseHash,
		jwtSecret:      secret,
		jwtExpiry:      expiry,
	}
}

// IssueToken verifies the passphrase and returns a token with the history scope.
func (s *AuthService) IssueToken(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	if s.passphraseHash == "" {
		return model.TokenResponse{}, ErrAuthDisabled
	}
	if req.Passphrase == "" {
		return model.TokenResponse{}, ErrPassphraseRequired
	}
	if err := ctx.Err(); err != nil {
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassphrase(req.Passphrase, s.passphraseHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	scopes := []string{crypto.ScopeHistory}
	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := crypto.IssueToken(tokenSubject, scopes, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		Token:     token,
		Scopes:    scopes,
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
	}, nil
}
