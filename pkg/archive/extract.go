package archive

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/zip"
)

// Extract unpacks the zip archive at zipPath into destDir. Entry names are
// resolved inside destDir, so entries like "../x" cannot escape it.
func Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	slog.Debug("archive extracted", "archive", zipPath, "entries", len(r.File), "dir", destDir)
	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	target, err := securejoin.SecureJoin(destDir, f.Name)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry: %w", err)
	}
	defer func() { _ = src.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	_, copyErr := io.Copy(out, src)
	if closeErr := out.Close(); closeErr != nil {
		if copyErr != nil {
			return fmt.Errorf("writing file: %w", copyErr)
		}
		return fmt.Errorf("closing file: %w", closeErr)
	}
	if copyErr != nil {
		return fmt.Errorf("writing file: %w", copyErr)
	}
	return nil
}
