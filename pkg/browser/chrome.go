package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/mailru/easyjson"
)

// visibleScript mirrors what a user can see: attached, displayed, not
// hidden and with a non-empty box.
const visibleScript = `(function(selector) {
	const el = document.querySelector(selector);
	if (!el) {
		return false;
	}
	const style = window.getComputedStyle(el);
	if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') {
		return false;
	}
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
})(%s)`

type chromeSession struct {
	ctx           context.Context
	cancelTab     context.CancelFunc
	cancelAlloc   context.CancelFunc
	actionTimeout time.Duration

	loads chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewChromeSession launches a local Chrome, or attaches to cfg.RemoteURL,
// and opens one tab. It satisfies Factory.
func NewChromeSession(ctx context.Context, cfg Config) (Session, error) {
	var (
		allocCtx    context.Context
		cancelAlloc context.CancelFunc
	)
	if cfg.RemoteURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", !cfg.Visible))
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	}

	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			slog.Warn(fmt.Sprintf(format, args...), "component", "chromedp")
		}),
	)

	s := &chromeSession{
		ctx:           tabCtx,
		cancelTab:     cancelTab,
		cancelAlloc:   cancelAlloc,
		actionTimeout: cfg.ActionTimeout,
		loads:         make(chan struct{}, 1),
	}
	if s.actionTimeout <= 0 {
		s.actionTimeout = DefaultActionTimeout
	}

	// The first Run allocates the browser and the tab.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	chromedp.ListenTarget(tabCtx, func(ev any) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			select {
			case s.loads <- struct{}{}:
			default:
			}
		}
	})

	return s, nil
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, "navigate", url, chromedp.ActionFunc(func(ctx context.Context) error {
		var res page.NavigateReturns
		if err := cdp.Execute(ctx, page.CommandNavigate, page.Navigate(url), &res); err != nil {
			return err
		}
		if res.ErrorText != "" {
			return fmt.Errorf("navigation error: %s", res.ErrorText)
		}
		return nil
	}))
}

func (s *chromeSession) Visible(ctx context.Context, selector string) (bool, error) {
	arg, err := json.Marshal(selector)
	if err != nil {
		return false, fmt.Errorf("encoding selector: %w", err)
	}

	var visible bool
	err = s.run(ctx, "check visibility of", selector,
		chromedp.Evaluate(fmt.Sprintf(visibleScript, arg), &visible))
	return visible, err
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	return s.run(ctx, "click", selector, chromedp.Click(selector, chromedp.ByQuery))
}

func (s *chromeSession) SetFiles(ctx context.Context, selector string, paths ...string) error {
	return s.run(ctx, "set files on", selector, chromedp.SetUploadFiles(selector, paths, chromedp.ByQuery))
}

func (s *chromeSession) Evaluate(ctx context.Context, script string, out any) error {
	return s.run(ctx, "evaluate script", "", chromedp.Evaluate(script, out,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
}

func (s *chromeSession) Send(ctx context.Context, method string, params any) error {
	var raw easyjson.Marshaler
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encoding %s params: %w", method, err)
		}
		msg := easyjson.RawMessage(data)
		raw = &msg
	}

	// Load events that fired before this command do not belong to it.
	s.drainLoads()

	return s.run(ctx, "send", method, chromedp.ActionFunc(func(ctx context.Context) error {
		return cdp.Execute(ctx, method, raw, nil)
	}))
}

func (s *chromeSession) AwaitPageLoad(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	select {
	case <-s.loads:
		return nil
	case <-s.ctx.Done():
		return &ActionError{Action: "await page load", Err: s.ctx.Err()}
	case <-waitCtx.Done():
		return &ActionError{Action: "await page load", Err: waitCtx.Err()}
	}
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
	})
	return s.closeErr
}

// run executes actions on the tab, bounded by the action timeout and by
// the caller's context.
func (s *chromeSession) run(ctx context.Context, action, target string, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.actionTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return &ActionError{Action: action, Target: target, Err: err}
	}
	return nil
}

func (s *chromeSession) drainLoads() {
	for {
		select {
		case <-s.loads:
		default:
			return
		}
	}
}
