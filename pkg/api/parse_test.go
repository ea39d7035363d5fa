package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJobs_Valid(t *testing.T) {
	content := `
jobs:
  - name: app
    icons:
      - icons/*.svg
      - extra/star.svg
    names: [home, star]
    selection: selection.json
    output: build/app
  - name: admin
    icons: [admin/**/*.svg]
    selection: /abs/selection.json
`
	dir := t.TempDir()
	f := filepath.Join(dir, "icomoon.yaml")
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	jf, err := LoadJobs(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jf.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jf.Jobs))
	}
	if jf.Dir != dir {
		t.Fatalf("expected Dir=%q, got %q", dir, jf.Dir)
	}
	if jf.FilePath != f {
		t.Fatalf("expected FilePath=%q, got %q", f, jf.FilePath)
	}
	app := jf.Jobs[0]
	if len(app.Icons) != 2 || app.Icons[1] != "extra/star.svg" {
		t.Errorf("unexpected icons %v", app.Icons)
	}
	if len(app.Names) != 2 || app.Names[0] != "home" {
		t.Errorf("unexpected names %v", app.Names)
	}
	if app.Output != "build/app" {
		t.Errorf("expected output 'build/app', got %q", app.Output)
	}
}

func TestLoadJobs_FileNotFound(t *testing.T) {
	_, err := LoadJobs("/nonexistent/icomoon.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading jobs file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadJobs_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "icomoon.yaml")
	if err := os.WriteFile(f, []byte("{{invalid"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadJobs(f)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parsing jobs file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadJobs_ValidationFails(t *testing.T) {
	content := `
jobs:
  - name: app
    icons: [a.svg]
`
	dir := t.TempDir()
	f := filepath.Join(dir, "icomoon.yaml")
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadJobs(f)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validating jobs file") || !strings.Contains(err.Error(), "selection is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
