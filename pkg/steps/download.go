package steps

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/systemstart/icomoon-cli/pkg/wait"
)

type reloadStep struct{}

func (reloadStep) Name() string { return StepReload }

// Run reloads the app so it reads the stored project again. The download
// button only shows up once the reloaded app has rendered it.
func (reloadStep) Run(ctx context.Context, sc *StepContext) error {
	if err := sc.Session.Send(ctx, "Page.reload", nil); err != nil {
		return err
	}
	if err := sc.Session.AwaitPageLoad(ctx); err != nil {
		return err
	}
	return sc.waitVisible(ctx, SelDownloadButton)
}

type downloadStep struct{}

func (downloadStep) Name() string { return StepDownload }

func (downloadStep) Run(ctx context.Context, sc *StepContext) error {
	if err := sc.Session.Click(ctx, SelDownloadButton); err != nil {
		return err
	}
	sc.logger().Info("started download", "archive", ArchiveName)

	archive := filepath.Join(sc.OutputDir, ArchiveName)

	// Chrome writes to a temporary name and renames once done, so the
	// archive may show up a few ticks after the click.
	err := wait.Until(ctx, archive+" created", func(context.Context) (bool, error) {
		_, err := sc.Files.Size(archive)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	}, sc.Download)
	if err != nil {
		return err
	}

	size, err := wait.StableSize(ctx, sc.Files, archive, sc.Download)
	if err != nil {
		return err
	}

	sc.ArchivePath = archive
	sc.ArchiveSize = size
	return nil
}
