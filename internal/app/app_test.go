package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samvad-hq/gallery-client/internal/config"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:         "gallery-client",
		APIBaseURL:      baseURL,
		RequestTimeout:  2 * time.Second,
		ToastDuration:   3 * time.Second,
		LoginPath:       "/login",
		CredentialStore: "bbolt",
		CredentialPath:  filepath.Join(t.TempDir(), "credentials.db"),
		CredentialKey:   "authToken",
	}
}

func TestAppReauthFlowClearsCredential(t *testing.T) {
	var sinkHits atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sinkHits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer sink.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 401, "message": "token expired", "data": nil})
	}))
	defer api.Close()

	cfg := testConfig(t, api.URL)
	cfg.NotifiersFile = filepath.Join(t.TempDir(), "notifiers.yaml")
	raw := "sinks:\n  - id: hook\n    type: http\n    http:\n      url: " + sink.URL + "\n"
	if err := os.WriteFile(cfg.NotifiersFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write notifiers file: %v", err)
	}

	var stderr bytes.Buffer
	a, err := New(context.Background(), cfg, nil, IO{In: strings.NewReader("y\n"), Out: &bytes.Buffer{}, Err: &stderr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if err := a.store.SaveCredential("stale"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	if _, err := a.Gallery.Categories(context.Background()); err == nil {
		t.Fatalf("expected application error")
	}

	if tok, _ := a.store.Credential(context.Background()); tok != "" {
		t.Fatalf("redirect should clear credential, got %q", tok)
	}
	if last, ok := a.Toaster.Last(); !ok || last.Message != "token expired" {
		t.Fatalf("toast = %#v", last)
	}
	if !strings.Contains(stderr.String(), "Confirm logout") || !strings.Contains(stderr.String(), "gallery login") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if sinkHits.Load() != 1 {
		t.Fatalf("expected 1 sink delivery, got %d", sinkHits.Load())
	}
}

func TestNewRejectsBadNotifiersFile(t *testing.T) {
	cfg := testConfig(t, "http://localhost:1")
	cfg.NotifiersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(context.Background(), cfg, nil, IO{}); err == nil {
		t.Fatalf("expected error for missing notifiers file")
	}
}
