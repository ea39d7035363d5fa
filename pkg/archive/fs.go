package archive

import (
	"fmt"
	"os"
)

// OS is the local filesystem the pipeline writes its output to.
type OS struct{}

func (OS) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (OS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// Size returns the byte size of path. A missing path is an error.
func (OS) Size(path string) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

func (OS) Extract(zipPath, destDir string) error {
	return Extract(zipPath, destDir)
}
