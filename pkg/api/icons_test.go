package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("<svg/>"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpandIcons(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "icons/b.svg", "icons/a.svg", "icons/nested/c.svg", "icons/readme.txt", "star.svg")

	got, err := ExpandIcons(dir, []string{"star.svg", "icons/**/*.svg", "icons/a.svg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "star.svg"),
		filepath.Join(dir, "icons/a.svg"),
		filepath.Join(dir, "icons/b.svg"),
		filepath.Join(dir, "icons/nested/c.svg"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandIcons() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandIcons_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.svg")
	abs := filepath.Join(dir, "a.svg")

	got, err := ExpandIcons("/elsewhere", []string{abs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{abs}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandIcons_NoMatch(t *testing.T) {
	_, err := ExpandIcons(t.TempDir(), []string{"missing/*.svg"})
	if err == nil {
		t.Fatal("expected error for unmatched pattern")
	}
	if !strings.Contains(err.Error(), "matched no files") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/work", "sel.json", "/work/sel.json"},
		{"/work", "/abs/sel.json", "/abs/sel.json"},
		{"/work", "", ""},
	}
	for _, tt := range tests {
		if got := ResolvePath(tt.base, tt.path); got != tt.want {
			t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
