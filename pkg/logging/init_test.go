package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logType   string
		level     string
		wantError bool
	}{
		{"json/info", JSON, "info", false},
		{"text/debug", Text, "debug", false},
		{"tint/warn", Tint, "warn", false},
		{"json/error", JSON, "error", false},
		{"invalid level", JSON, "bogus", true},
		{"unknown type", "unknown", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&bytes.Buffer{}, tt.logType, tt.level)
			if (err != nil) != tt.wantError {
				t.Errorf("New(%q, %q) error = %v, wantError = %v", tt.logType, tt.level, err, tt.wantError)
			}
		})
	}
}

func TestNew_JSONRecord(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, JSON, "info")
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hidden")
	logger.Info("stage finished", "stage", "generate")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "stage finished" || rec["stage"] != "generate" || rec["tool"] != "icomoon-cli" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestInitialize(t *testing.T) {
	if err := Initialize(Text, "info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Initialize("xml", "info"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
