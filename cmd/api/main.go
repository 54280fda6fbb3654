package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vaultpass/passcheck-go/internal/app"
	"github.com/vaultpass/passcheck-go/internal/config"
	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/handler"
	"github.com/vaultpass/passcheck-go/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(app.NewLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.AdminPassphraseHash == "" {
		slog.Warn("ADMIN_PASSPHRASE_HASH not set, history routes will reject all tokens")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(ctx, cfg, a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env, "history", cfg.HistoryBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newRouter(ctx context.Context, cfg config.Config, a *app.App) http.Handler {
	checkHandler := handler.NewCheckHandler(a.Check)
	genHandler := handler.NewGeneratorHandler(a.Generator)
	historyHandler := handler.NewHistoryHandler(a.History)
	authHandler := handler.NewAuthHandler(a.Auth)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/check", checkHandler.HandleCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.GenerateRPS, cfg.GenerateBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, 1, 5))
		r.Post("/api/v1/auth/token", authHandler.HandleToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret, crypto.ScopeHistory))
		r.Get("/api/v1/history", historyHandler.HandleRecent)
		r.Post("/api/v1/history/export", historyHandler.HandleExport)
	})

	return r
}
