// Package app wires configuration, the history backend and the services
// shared by the API server and the command-line client.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/vaultpass/passcheck-go/internal/config"
	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/repository"
	"github.com/vaultpass/passcheck-go/internal/service"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

// NewLogger builds the process logger: text output on stderr at level.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// App holds the services and the resources they depend on.
type App struct {
	Store     history.Store
	Check     *service.CheckService
	Generator *service.GeneratorService
	History   *service.HistoryService
	Auth      *service.AuthService

	db *sql.DB
}

// New opens the configured history backend and builds the services.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scorer, err := strength.NewScorer(strength.DefaultPolicy())
	if err != nil {
		return nil, err
	}

	return &App{
		Store:     store,
		Check:     service.NewCheckService(scorer, store, cfg.GuessesPerSecond),
		Generator: service.NewGeneratorService(crypto.NewGenerator(nil), scorer, store),
		History:   service.NewHistoryService(store, cfg.ExportDir),
		Auth:      service.NewAuthService(cfg.AdminPassphraseHash, cfg.JWTSecret, cfg.JWTExpiry),
		db:        db,
	}, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openStore(ctx context.Context, cfg config.Config) (history.Store, *sql.DB, error) {
	switch cfg.HistoryBackend {
	case config.BackendNone:
		slog.Info("history disabled")
		return history.Discard{}, nil, nil
	case config.BackendMySQL:
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open history database: %w", err)
		}
		repo := repository.NewHistoryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("history backend ready", "backend", cfg.HistoryBackend)
		return repo, db, nil
	default:
		slog.Debug("history backend ready", "backend", cfg.HistoryBackend, "file", cfg.HistoryFile)
		return history.NewFileStore(cfg.HistoryFile), nil, nil
	}
}
