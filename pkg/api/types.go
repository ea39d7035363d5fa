package api

// JobsFile is the request file format. Each job is one pipeline run.
type JobsFile struct {
	Jobs []Job `yaml:"jobs"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// Job describes the inputs of a single run.
type Job struct {
	Name string `yaml:"name"`

	// Icons are file paths or doublestar patterns, e.g. "icons/**/*.svg".
	// Their expanded order is the upload order.
	Icons []string `yaml:"icons"`

	// Names rename generated glyphs by position: Names[i] applies to the
	// i-th glyph in the order the app lists them, which is assumed to be
	// the upload order.
	Names []string `yaml:"names"`

	Selection string `yaml:"selection"`
	Output    string `yaml:"output"`
}
