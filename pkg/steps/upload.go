package steps

import (
	"context"
	"fmt"
)

type launchStep struct{}

func (launchStep) Name() string { return StepLaunch }

// Run points browser downloads at the output directory and opens the app.
// The app renders incrementally, so the load event is not awaited.
func (launchStep) Run(ctx context.Context, sc *StepContext) error {
	err := sc.Session.Send(ctx, "Browser.setDownloadBehavior", map[string]string{
		"behavior":     "allow",
		"downloadPath": sc.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("configuring downloads: %w", err)
	}

	if err := sc.Session.Navigate(ctx, sc.AppURL); err != nil {
		return err
	}
	sc.logger().Info("opened app", "url", sc.AppURL)
	return nil
}

type uploadSelectionStep struct{}

func (uploadSelectionStep) Name() string { return StepUploadSelection }

func (uploadSelectionStep) Run(ctx context.Context, sc *StepContext) error {
	if err := sc.waitVisible(ctx, SelImportConfigButton); err != nil {
		return err
	}
	sc.logger().Info("dashboard is visible, uploading selection", "selection", sc.SelectionPath)

	if err := sc.Session.SetFiles(ctx, SelImportConfigInput, sc.SelectionPath); err != nil {
		return err
	}
	if err := sc.waitVisible(ctx, SelOverlayConfirm); err != nil {
		return err
	}
	return sc.Session.Click(ctx, SelOverlayConfirm)
}

type uploadIconsStep struct{}

func (uploadIconsStep) Name() string { return StepUploadIcons }

// Run uploads all icons in one batch and selects them.
func (uploadIconsStep) Run(ctx context.Context, sc *StepContext) error {
	if err := sc.Session.Click(ctx, SelMenuButton); err != nil {
		return err
	}
	if err := sc.Session.SetFiles(ctx, SelIconInput, sc.Icons...); err != nil {
		return err
	}
	if err := sc.waitVisible(ctx, SelNewIcon); err != nil {
		return err
	}
	if err := sc.Session.Click(ctx, SelSelectAllButton); err != nil {
		return err
	}
	sc.logger().Info("uploaded and selected icons", "count", len(sc.Icons))
	return nil
}

type generateStep struct{}

func (generateStep) Name() string { return StepGenerate }

func (generateStep) Run(ctx context.Context, sc *StepContext) error {
	if err := sc.Session.Click(ctx, SelGenerateLink); err != nil {
		return err
	}
	return sc.waitVisible(ctx, SelGlyphSet)
}
