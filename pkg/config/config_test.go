package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppURL != DefaultAppURL {
		t.Errorf("expected default app URL, got %q", cfg.AppURL)
	}
	if cfg.Browser.Visible {
		t.Error("expected headless by default")
	}
	if cfg.Browser.ActionTimeout != 30*time.Second {
		t.Errorf("unexpected action timeout %s", cfg.Browser.ActionTimeout)
	}
	if cfg.Wait.Timeout != 60*time.Second || cfg.Wait.Interval != 500*time.Millisecond {
		t.Errorf("unexpected wait config %+v", cfg.Wait)
	}
	if cfg.Wait.DownloadTimeout != 60*time.Second || cfg.Wait.DownloadInterval != time.Second {
		t.Errorf("unexpected download wait config %+v", cfg.Wait)
	}
}

func TestLoad_Overrides(t *testing.T) {
	lookuper := envconfig.PrefixLookuper("ICOMOON_", envconfig.MapLookuper(map[string]string{
		"ICOMOON_APP_URL":       "http://localhost:8080/#/select",
		"ICOMOON_VISIBLE":       "true",
		"ICOMOON_REMOTE_URL":    "ws://127.0.0.1:9222",
		"ICOMOON_WAIT_TIMEOUT":  "2m",
		"ICOMOON_WAIT_INTERVAL": "250ms",
		"WAIT_TIMEOUT":          "1s",
	}))

	cfg, err := load(context.Background(), lookuper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppURL != "http://localhost:8080/#/select" {
		t.Errorf("unexpected app URL %q", cfg.AppURL)
	}
	if !cfg.Browser.Visible || cfg.Browser.RemoteURL != "ws://127.0.0.1:9222" {
		t.Errorf("unexpected browser config %+v", cfg.Browser)
	}
	if cfg.Wait.Timeout != 2*time.Minute || cfg.Wait.Interval != 250*time.Millisecond {
		t.Errorf("unexpected wait config %+v", cfg.Wait)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad duration", map[string]string{"WAIT_TIMEOUT": "soon"}, "processing environment"},
		{"bad bool", map[string]string{"VISIBLE": "maybe"}, "processing environment"},
		{"zero interval", map[string]string{"WAIT_INTERVAL": "0s"}, "intervals must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
