package processing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/systemstart/icomoon-cli/pkg/archive"
	"github.com/systemstart/icomoon-cli/pkg/browser"
	"github.com/systemstart/icomoon-cli/pkg/config"
	"github.com/systemstart/icomoon-cli/pkg/steps"
	"github.com/systemstart/icomoon-cli/pkg/wait"
)

const (
	stagePrepare = "prepare"
	stageUnpack  = "unpack"
)

// Filesystem is what a run needs from the local disk.
type Filesystem interface {
	wait.Sizer
	RemoveAll(path string) error
	MkdirAll(path string) error
	Extract(zipPath, destDir string) error
}

// Request holds the inputs of one run.
type Request struct {
	Icons []string

	// Names[i] renames the i-th generated glyph. The app's glyph order is
	// assumed to match the upload order of Icons; nothing verifies it.
	Names []string

	SelectionPath string
	OutputDir     string // defaults to DefaultOutputDir()

	WhenFinished func(Result)
}

// Result describes a finished run.
type Result struct {
	OutputDir   string
	ArchiveSize int64
	Skipped     bool // there were no icons to upload
}

// Runner executes the upload-generate-download workflow, one run at a time.
type Runner struct {
	Open     browser.Factory
	Files    Filesystem
	AppURL   string
	Browser  browser.Config // DownloadDir is set per run
	Wait     wait.Options
	Download wait.Options
}

// NewRunner wires a Runner to Chrome and the local filesystem.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Open:   browser.NewChromeSession,
		Files:  archive.OS{},
		AppURL: cfg.AppURL,
		Browser: browser.Config{
			Visible:       cfg.Browser.Visible,
			RemoteURL:     cfg.Browser.RemoteURL,
			ActionTimeout: cfg.Browser.ActionTimeout,
		},
		Wait:     wait.Options{Interval: cfg.Wait.Interval, Timeout: cfg.Wait.Timeout},
		Download: wait.Options{Interval: cfg.Wait.DownloadInterval, Timeout: cfg.Wait.DownloadTimeout},
	}
}

// DefaultOutputDir is the "output" directory next to the executable.
func DefaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "output"
	}
	return filepath.Join(filepath.Dir(exe), "output")
}

// Run executes the workflow. Stages run strictly in order and the first
// failure aborts the run; the browser session is closed exactly once on
// every path, before the archive is unpacked.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	log := slog.With("run", uuid.NewString())
	log.Info("preparing")

	if len(req.Icons) == 0 {
		log.Info("no new icons found")
		return &Result{Skipped: true}, nil
	}

	sc, err := r.prepare(req)
	if err != nil {
		log.Error("pipeline failed", "stage", stagePrepare, "error", err)
		return nil, fmt.Errorf("stage %q failed: %w", stagePrepare, err)
	}
	sc.Logger = log

	cfg := r.Browser
	cfg.DownloadDir = sc.OutputDir

	err = browser.WithSession(ctx, r.Open, cfg, func(s browser.Session) error {
		log.Info("started a new browser session")
		sc.Session = s
		return runSteps(ctx, sc)
	})
	if err != nil {
		log.Error("pipeline failed", "error", err)
		return nil, err
	}

	log.Info("successfully downloaded, unpacking", "archive", sc.ArchivePath, "size", humanize.Bytes(uint64(sc.ArchiveSize)))
	if err := r.unpack(sc.ArchivePath, sc.OutputDir); err != nil {
		log.Error("pipeline failed", "stage", stageUnpack, "error", err)
		return nil, fmt.Errorf("stage %q failed: %w", stageUnpack, err)
	}

	result := Result{OutputDir: sc.OutputDir, ArchiveSize: sc.ArchiveSize}
	log.Info("finished", "outputDir", result.OutputDir)
	if req.WhenFinished != nil {
		req.WhenFinished(result)
	}
	return &result, nil
}

func (r *Runner) prepare(req Request) (*steps.StepContext, error) {
	if req.SelectionPath == "" {
		return nil, &PreconditionError{Reason: "please configure a valid selection file path"}
	}

	selection, err := filepath.Abs(req.SelectionPath)
	if err != nil {
		return nil, fmt.Errorf("resolving selection path: %w", err)
	}

	icons := make([]string, 0, len(req.Icons))
	for _, icon := range req.Icons {
		abs, err := filepath.Abs(icon)
		if err != nil {
			return nil, fmt.Errorf("resolving icon path %s: %w", icon, err)
		}
		icons = append(icons, abs)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir()
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	// Earlier output is never reused.
	if err := r.Files.RemoveAll(outputDir); err != nil {
		return nil, fmt.Errorf("cleaning output directory: %w", err)
	}
	if err := r.Files.MkdirAll(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &steps.StepContext{
		Files:         r.Files,
		AppURL:        r.AppURL,
		OutputDir:     outputDir,
		SelectionPath: selection,
		Icons:         icons,
		Names:         req.Names,
		Wait:          r.Wait,
		Download:      r.Download,
	}, nil
}

func runSteps(ctx context.Context, sc *steps.StepContext) error {
	if len(sc.Names) == 0 {
		sc.Logger.Debug("skipping stage, no names given", "stage", steps.StepRename)
	}
	for _, step := range steps.Sequence(sc) {
		sc.Logger.Info("running stage", "stage", step.Name())
		if err := step.Run(ctx, sc); err != nil {
			return fmt.Errorf("stage %q failed: %w", step.Name(), err)
		}
	}
	return nil
}

func (r *Runner) unpack(archivePath, outputDir string) error {
	if err := r.Files.Extract(archivePath, outputDir); err != nil {
		return &UnpackError{Archive: archivePath, Err: err}
	}
	if err := r.Files.RemoveAll(archivePath); err != nil {
		return fmt.Errorf("removing archive: %w", err)
	}
	return nil
}
