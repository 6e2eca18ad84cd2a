package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samvad-hq/gallery-client/internal/config"
)

func TestZapLoggerWritesJSONAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	log := initWithWriter(&config.Config{AppName: "gallery-client", LogLevel: "warn"}, &buf)

	log.InfoObj("dropped", "k", "v")
	log.WarnObj("request failed", "request_error", map[string]any{"status": 404})

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"request failed"`) || !strings.Contains(out, `"status":404`) {
		t.Fatalf("missing warn entry: %s", out)
	}
	if !strings.Contains(out, `"app":"gallery-client"`) {
		t.Fatalf("missing app field: %s", out)
	}
}

func TestEnsureFallsBackToNop(t *testing.T) {
	if _, ok := Ensure(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil input")
	}
}
