package retry

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

// Policy is a fixed retry policy: up to MaxAttempts calls with a constant
// Delay between them. There is no backoff and no jitter.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy returns 3 attempts with a 2 second pause
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultDelay,
	}
}

// Notify is called after a failed attempt that will be retried
type Notify func(attempt int, err error)

// Do calls fn until it succeeds, returns an error for which retryable is
// false, or MaxAttempts is reached. The last error is returned as is. The
// pause between attempts is skipped after the final attempt and aborted when
// ctx is done.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, notify Notify, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt == attempts {
			return err
		}

		if notify != nil {
			notify(attempt, err)
		}

		if err := sleep(ctx, p.Delay); err != nil {
			return goerr.Wrap(err, "retry interrupted", goerr.V("attempt", attempt))
		}
	}

	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
