package bus

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy drives retry-with-backoff around transport operations. It is a
// plain value so the connect path can be tested with a failing stub.
type RetryPolicy struct {
	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration

	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration

	// Multiplier scales the delay after each failure.
	Multiplier float64

	// MaxAttempts bounds the number of attempts. Zero means retry until the
	// context is cancelled.
	MaxAttempts int
}

// DefaultRetryPolicy matches the transport contract: start at 2s, double up
// to a 2-minute cap, retry until cancelled.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay:  2 * time.Second,
		MaxDelay:   2 * time.Minute,
		Multiplier: 2,
	}
}

// Execute runs op until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. Cancellation always wins over the retry schedule and
// is reported as the context's error.
func (p RetryPolicy) Execute(ctx context.Context, name string, op func(ctx context.Context) error) error {
	delay := p.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}

	var err error
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err = op(ctx); err == nil {
			return nil
		}

		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return err
		}

		slog.Warn("operation failed, will retry",
			"operation", name,
			"attempt", attempt,
			"retry_in", delay.String(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * p.Multiplier)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}
