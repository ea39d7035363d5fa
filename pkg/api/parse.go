package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJobs reads a jobs file, sets Dir/FilePath, and validates it.
func LoadJobs(filename string) (*JobsFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}

	var f JobsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing jobs file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	f.FilePath = absPath
	f.Dir = filepath.Dir(absPath)

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validating jobs file %s: %w", filename, err)
	}

	return &f, nil
}
