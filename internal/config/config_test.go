package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.ToastDuration != 3*time.Second {
		t.Fatalf("unexpected toast duration %v", cfg.ToastDuration)
	}
	if cfg.CredentialKey != "authToken" {
		t.Fatalf("unexpected credential key %q", cfg.CredentialKey)
	}
}

func TestLoadReadsLegacyBaseURL(t *testing.T) {
	t.Setenv("VITE_API_BASE_URL", "https://gallery.example/api/")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://gallery.example/api" {
		t.Fatalf("expected trimmed legacy base url, got %q", cfg.APIBaseURL)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	v := viper.New()
	v.Set("request_timeout_ms", 0)
	if _, err := load(v); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
