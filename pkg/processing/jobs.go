package processing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/icomoon-cli/pkg/api"
)

// RunJobs runs every job of a jobs file in order, each with its own
// session. A failed job does not stop the ones after it.
func RunJobs(ctx context.Context, r *Runner, f *api.JobsFile, whenFinished func(job string, res Result)) error {
	var failed []string

	for _, job := range f.Jobs {
		if ctx.Err() != nil {
			slog.Warn("not starting job, interrupted", "name", job.Name)
			failed = append(failed, job.Name)
			continue
		}

		slog.Info("processing job", "name", job.Name)
		if err := runJob(ctx, r, f.Dir, job, whenFinished); err != nil {
			slog.Error("job failed", "name", job.Name, "error", err)
			failed = append(failed, job.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d job(s) failed: %v", len(failed), failed)
	}
	return nil
}

func runJob(ctx context.Context, r *Runner, baseDir string, job api.Job, whenFinished func(string, Result)) error {
	icons, err := api.ExpandIcons(baseDir, job.Icons)
	if err != nil {
		return &PreconditionError{Reason: err.Error()}
	}

	req := Request{
		Icons:         icons,
		Names:         job.Names,
		SelectionPath: api.ResolvePath(baseDir, job.Selection),
		OutputDir:     api.ResolvePath(baseDir, job.Output),
	}
	if whenFinished != nil {
		req.WhenFinished = func(res Result) { whenFinished(job.Name, res) }
	}

	_, err = r.Run(ctx, req)
	return err
}
