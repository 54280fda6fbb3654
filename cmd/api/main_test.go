package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passcheck-go/internal/app"
	"github.com/vaultpass/passcheck-go/internal/config"
	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := crypto.HashPassphrase("let me see")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg := config.Config{
		HistoryBackend:      config.BackendFile,
		HistoryFile:         filepath.Join(dir, "password_history.txt"),
		ExportDir:           dir,
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		AdminPassphraseHash: hash,
		GuessesPerSecond:    1e8,
		GenerateRPS:         100,
		GenerateBurst:       100,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	a, err := app.New(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })

	srv := httptest.NewServer(newRouter(ctx, cfg, a))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRouter_HistoryRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	if resp := post(t, srv.URL+"/api/v1/check", "", `{"password":"Abcdef123!"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("check status = %d", resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/v1/history")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("history without token: status = %d, want 401", resp.StatusCode)
	}
	if resp := post(t, srv.URL+"/api/v1/history/export", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("export without token: status = %d, want 401", resp.StatusCode)
	}

	tokResp := post(t, srv.URL+"/api/v1/auth/token", "", `{"passphrase":"let me see"}`)
	if tokResp.StatusCode != http.StatusOK {
		t.Fatalf("token status = %d", tokResp.StatusCode)
	}
	var tok model.TokenResponse
	if err := json.NewDecoder(tokResp.Body).Decode(&tok); err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/history?limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	hresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer hresp.Body.Close()
	if hresp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", hresp.StatusCode)
	}
	var hist model.HistoryResponse
	if err := json.NewDecoder(hresp.Body).Decode(&hist); err != nil {
		t.Fatal(err)
	}
	if len(hist.Entries) != 1 || hist.Entries[0].Strength != "Strong" {
		t.Errorf("unexpected history: %+v", hist.Entries)
	}

	if resp := post(t, srv.URL+"/api/v1/history/export", tok.Token, `{"timestamp":true}`); resp.StatusCode != http.StatusCreated {
		t.Errorf("export status = %d, want 201", resp.StatusCode)
	}
}

func TestRouter_Generate(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/api/v1/generate", "", `{"length":12,"count":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var gen model.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		t.Fatal(err)
	}
	if len(gen.Passwords) != 2 {
		t.Errorf("expected 2 passwords, got %d", len(gen.Passwords))
	}
}
