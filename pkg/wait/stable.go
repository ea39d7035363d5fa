package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultSizeInterval = time.Second
	DefaultSizeTimeout  = 60 * time.Second
)

// Sizer reports the current byte size of a path.
type Sizer interface {
	Size(path string) (int64, error)
}

// StableSize samples the size of path once per interval and returns once
// two consecutive samples are equal and non-zero. It is the only signal
// that a browser download has finished, since none is exposed directly.
//
// A failing size query is fatal: the transfer is expected to be under way
// when this is called.
func StableSize(ctx context.Context, s Sizer, path string, opts Options) (int64, error) {
	opts = opts.withDefaults(DefaultSizeInterval, DefaultSizeTimeout)

	var last int64
	sampled := false
	err := poll(ctx, opts, func() error {
		size, err := s.Size(path)
		if err != nil {
			return fmt.Errorf("checking size of %s: %w", path, err)
		}
		if sampled && size > 0 && size == last {
			return nil
		}
		last, sampled = size, true
		return errNotReady
	})
	if errors.Is(err, errNotReady) {
		return 0, &TimeoutError{
			Condition: "stable size of " + path,
			Timeout:   opts.Timeout,
			Hint:      "please check your network",
		}
	}
	if err != nil {
		return 0, err
	}
	return last, nil
}
