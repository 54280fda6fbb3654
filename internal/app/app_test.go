package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vaultpass/passcheck-go/internal/config"
	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
)

func testConfig(t *testing.T, backend string) config.Config {
	dir := t.TempDir()
	return config.Config{
		HistoryBackend:   backend,
		HistoryFile:      filepath.Join(dir, "password_history.txt"),
		ExportDir:        dir,
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		GuessesPerSecond: 1e8,
	}
}

func TestNew_FileBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	defer a.Close()

	fs, ok := a.Store.(*history.FileStore)
	if !ok {
		t.Fatalf("Store = %T, want *history.FileStore", a.Store)
	}
	if fs.Path() != cfg.HistoryFile {
		t.Errorf("Path() = %q, want %q", fs.Path(), cfg.HistoryFile)
	}

	if _, err := a.Check.Check(context.Background(), model.CheckRequest{Password: "Abcdef123!"}); err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}
	resp, err := a.History.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(resp.Entries))
	}
}

func TestNew_NoneBackend(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.BackendNone))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if _, ok := a.Store.(history.Discard); !ok {
		t.Errorf("Store = %T, want history.Discard", a.Store)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
