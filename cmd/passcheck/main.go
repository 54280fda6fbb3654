package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vaultpass/passcheck-go/internal/app"
	"github.com/vaultpass/passcheck-go/internal/cli"
	"github.com/vaultpass/passcheck-go/internal/config"
)

var version = "dev" // set by the linker

func main() {
	// A missing .env is normal for the console client.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "passcheck:", err)
		os.Exit(1)
	}

	// The console reports problems itself; logs are opt-in through LOG_LEVEL.
	level := slog.LevelError
	if os.Getenv("LOG_LEVEL") != "" {
		level = cfg.LogLevel
	}
	slog.SetDefault(app.NewLogger(level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.New(cfg).NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
