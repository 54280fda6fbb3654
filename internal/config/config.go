// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vaultpass/passcheck-go/internal/strength"
)

const defaultJWTSecret = "dev-secret-change-in-production"

// History backends.
const (
	BackendFile  = "file"
	BackendMySQL = "mysql"
	BackendNone  = "none"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port     string
	BindAddr string
	Env      string
	LogLevel slog.Level

	HistoryBackend string
	HistoryFile    string
	ExportDir      string
	DatabaseDSN    string

	JWTSecret           string
	JWTExpiry           time.Duration
	AdminPassphraseHash string

	GuessesPerSecond float64
	GenerateRPS      float64
	GenerateBurst    int
}

// Addr returns the listen address of the API server.
func (c Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		BindAddr:            getEnv("BIND_ADDR", "127.0.0.1"),
		Env:                 getEnv("ENV", "development"),
		HistoryBackend:      strings.ToLower(getEnv("HISTORY_BACKEND", BackendFile)),
		HistoryFile:         getEnv("HISTORY_FILE", "password_history.txt"),
		ExportDir:           getEnv("EXPORT_DIR", ""),
		DatabaseDSN:         getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passcheck"),
		JWTSecret:           getEnv("JWT_SECRET", defaultJWTSecret),
		AdminPassphraseHash: getEnv("ADMIN_PASSPHRASE_HASH", ""),
	}

	var errs []error

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	errs = append(errs, err)
	cfg.LogLevel = level

	cfg.JWTExpiry, err = time.ParseDuration(getEnv("JWT_EXPIRY", "1h"))
	if err == nil && cfg.JWTExpiry <= 0 {
		err = errors.New("must be positive")
	}
	errs = append(errs, wrapKey("JWT_EXPIRY", err))

	cfg.GuessesPerSecond, err = strconv.ParseFloat(getEnv("GUESSES_PER_SECOND", "1e8"), 64)
	if err == nil && (!(cfg.GuessesPerSecond > 0) || math.IsInf(cfg.GuessesPerSecond, 1)) {
		err = strength.ErrInvalidGuessRate
	}
	errs = append(errs, wrapKey("GUESSES_PER_SECOND", err))

	cfg.GenerateRPS, err = strconv.ParseFloat(getEnv("GENERATE_RPS", "5"), 64)
	if err == nil && (!(cfg.GenerateRPS > 0) || math.IsInf(cfg.GenerateRPS, 1)) {
		err = errors.New("must be a positive finite number")
	}
	errs = append(errs, wrapKey("GENERATE_RPS", err))

	cfg.GenerateBurst, err = strconv.Atoi(getEnv("GENERATE_BURST", "10"))
	if err == nil && cfg.GenerateBurst <= 0 {
		err = errors.New("must be positive")
	}
	errs = append(errs, wrapKey("GENERATE_BURST", err))

	switch cfg.HistoryBackend {
	case BackendFile, BackendMySQL, BackendNone:
	default:
		errs = append(errs, wrapKey("HISTORY_BACKEND", fmt.Errorf("unknown backend %q", cfg.HistoryBackend)))
	}

	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
		if cfg.HistoryBackend == BackendFile {
			cfg.ExportDir = filepath.Dir(cfg.HistoryFile)
		}
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		errs = append(errs, wrapKey("JWT_SECRET", errors.New("must be set in production environment")))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, wrapKey("LOG_LEVEL", err)
	}
	return level, nil
}

func wrapKey(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
