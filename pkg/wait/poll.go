package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultInterval = 500 * time.Millisecond
	DefaultTimeout  = 60 * time.Second
)

// errNotReady marks a tick on which the condition did not hold yet.
var errNotReady = errors.New("condition not met")

// Options tunes a poll. Zero values fall back to the defaults of the caller.
type Options struct {
	Interval time.Duration
	Timeout  time.Duration

	// Timer drives the ticks. Nil means wall-clock timers.
	Timer retry.Timer
}

// TimeoutError reports a wait that spent its tick budget.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
	Hint      string
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("%s not reached after %s", e.Condition, e.Timeout)
	if e.Hint != "" {
		msg += ", " + e.Hint
	}
	return msg
}

// Predicate is evaluated once per tick. An error aborts the poll.
type Predicate func(ctx context.Context) (bool, error)

// Until evaluates predicate immediately and then once per interval until
// it returns true. Time is counted in ticks, so the poll gives up after
// Timeout/Interval ticks regardless of how long each evaluation took.
func Until(ctx context.Context, condition string, predicate Predicate, opts Options) error {
	opts = opts.withDefaults(DefaultInterval, DefaultTimeout)

	err := poll(ctx, opts, func() error {
		ok, err := predicate(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errNotReady
		}
		return nil
	})
	if errors.Is(err, errNotReady) {
		return &TimeoutError{Condition: condition, Timeout: opts.Timeout}
	}
	return err
}

// Visible polls a selector's visibility through v.
func Visible(ctx context.Context, v VisibilityChecker, selector string, opts Options) error {
	return Until(ctx, selector+" visible", func(ctx context.Context) (bool, error) {
		return v.Visible(ctx, selector)
	}, opts)
}

// VisibilityChecker is the part of a browser session a visibility poll needs.
type VisibilityChecker interface {
	Visible(ctx context.Context, selector string) (bool, error)
}

func poll(ctx context.Context, opts Options, fn func() error) error {
	retryOpts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(ticks(opts) + 1),
		retry.Delay(opts.Interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errNotReady)
		}),
	}
	if opts.Timer != nil {
		retryOpts = append(retryOpts, retry.WithTimer(opts.Timer))
	}
	return retry.Do(fn, retryOpts...)
}

func ticks(opts Options) uint {
	n := opts.Timeout / opts.Interval
	if n < 1 {
		return 1
	}
	return uint(n)
}

func (o Options) withDefaults(interval, timeout time.Duration) Options {
	if o.Interval <= 0 {
		o.Interval = interval
	}
	if o.Timeout <= 0 {
		o.Timeout = timeout
	}
	return o
}
