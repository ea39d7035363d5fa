package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/icomoon-cli/pkg/browser"
	"github.com/systemstart/icomoon-cli/pkg/wait"
)

const (
	StepLaunch          = "launch"
	StepUploadSelection = "upload-selection"
	StepUploadIcons     = "upload-icons"
	StepGenerate        = "generate"
	StepRename          = "rename"
	StepReload          = "reload"
	StepDownload        = "download"
)

// ArchiveName is the file name the app gives the generated bundle.
const ArchiveName = "icomoon.zip"

// StepContext provides the runtime context for a step. Paths are absolute.
type StepContext struct {
	Session browser.Session
	Files   wait.Sizer

	AppURL        string
	OutputDir     string
	SelectionPath string
	Icons         []string
	Names         []string

	Wait     wait.Options // element polls
	Download wait.Options // download polls

	Logger *slog.Logger

	// Set by the download step.
	ArchivePath string
	ArchiveSize int64
}

// Step is one stage of the browser workflow.
type Step interface {
	Name() string
	Run(ctx context.Context, sc *StepContext) error
}

// Sequence returns the stages in execution order. Rename is only included
// when there are names to apply.
func Sequence(sc *StepContext) []Step {
	seq := []Step{
		launchStep{},
		uploadSelectionStep{},
		uploadIconsStep{},
		generateStep{},
	}
	if len(sc.Names) > 0 {
		seq = append(seq, renameStep{})
	}
	return append(seq, reloadStep{}, downloadStep{})
}

func (sc *StepContext) waitVisible(ctx context.Context, selector string) error {
	return wait.Visible(ctx, sc.Session, selector, sc.Wait)
}

func (sc *StepContext) logger() *slog.Logger {
	if sc.Logger == nil {
		return slog.Default()
	}
	return sc.Logger
}
