package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultActionTimeout bounds every single driver call.
const DefaultActionTimeout = 30 * time.Second

// Session is the narrow action surface a pipeline run drives. A Session
// belongs to exactly one run and is closed exactly once.
type Session interface {
	// Navigate starts loading url and returns without waiting for the
	// load event.
	Navigate(ctx context.Context, url string) error
	Visible(ctx context.Context, selector string) (bool, error)
	Click(ctx context.Context, selector string) error
	SetFiles(ctx context.Context, selector string, paths ...string) error
	// Evaluate runs script in the page. When the script yields a promise
	// it is awaited. out may be nil.
	Evaluate(ctx context.Context, script string, out any) error
	// Send issues a raw protocol command. params may be nil.
	Send(ctx context.Context, method string, params any) error
	// AwaitPageLoad blocks until the page fires its load event after the
	// most recent Send.
	AwaitPageLoad(ctx context.Context) error
	Close() error
}

// Config configures a new session.
type Config struct {
	Visible       bool
	RemoteURL     string // attach to a running browser instead of launching one
	DownloadDir   string
	ActionTimeout time.Duration
}

// Factory opens a session.
type Factory func(ctx context.Context, cfg Config) (Session, error)

// ActionError reports a failed driver action.
type ActionError struct {
	Action string
	Target string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Action, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WithSession opens a session, hands it to body and closes it exactly once
// on every exit path. An error from body takes precedence over a close
// error, which is then only logged.
func WithSession(ctx context.Context, open Factory, cfg Config, body func(Session) error) (err error) {
	s, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening browser session: %w", err)
	}
	slog.Debug("browser session opened", "visible", cfg.Visible, "remote", cfg.RemoteURL != "")

	defer func() {
		closeErr := s.Close()
		switch {
		case closeErr == nil:
			slog.Debug("browser session closed")
		case err != nil:
			slog.Warn("failed to close browser session", "error", closeErr)
		default:
			err = fmt.Errorf("closing browser session: %w", closeErr)
		}
	}()

	return body(s)
}
