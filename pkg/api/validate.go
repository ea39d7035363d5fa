package api

import (
	"fmt"
	"path/filepath"
)

// Validate checks the jobs file for errors.
func (f *JobsFile) Validate() error {
	if len(f.Jobs) == 0 {
		return fmt.Errorf("jobs list is empty")
	}

	names := make(map[string]bool)
	outputs := make(map[string]bool)

	for i, job := range f.Jobs {
		if job.Name == "" {
			return fmt.Errorf("job %d: name is required", i)
		}
		if names[job.Name] {
			return fmt.Errorf("job %q: duplicate name", job.Name)
		}
		names[job.Name] = true

		if err := job.Validate(); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}

		// An empty output means the default directory, which two jobs
		// cannot share either.
		out := filepath.Clean(job.Output)
		if job.Output != "" && !filepath.IsAbs(out) {
			out = filepath.Join(f.Dir, out)
		}
		if outputs[out] {
			return fmt.Errorf("job %q: duplicate output path %q", job.Name, job.Output)
		}
		outputs[out] = true
	}

	return nil
}

// Validate checks a single job.
func (j Job) Validate() error {
	if j.Selection == "" {
		return fmt.Errorf("selection is required")
	}
	for i, pattern := range j.Icons {
		if pattern == "" {
			return fmt.Errorf("icons[%d] is empty", i)
		}
	}
	return nil
}
