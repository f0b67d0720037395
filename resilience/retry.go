package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	goerrors "github.com/kbukum/gqlkit/errors"
)

// Backoff is an exponential delay schedule: Initial * Factor^(attempt-1),
// spread by ±Jitter and capped at Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
	// Jitter is a fraction in [0, 1].
	Jitter float64
}

// Delay returns the wait after the given failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	d := float64(b.Initial) * math.Pow(b.Factor, float64(attempt-1))
	if b.Jitter > 0 {
		d += d * b.Jitter * (2*rand.Float64() - 1)
	}
	switch {
	case d > float64(b.Max):
		return b.Max
	case d < 0:
		return b.Initial
	}
	return time.Duration(d)
}

func (b Backoff) orDefault() Backoff {
	def := DefaultRetryConfig().Backoff
	if b.Initial <= 0 {
		b.Initial = def.Initial
	}
	if b.Max <= 0 {
		b.Max = def.Max
	}
	if b.Factor <= 0 {
		b.Factor = def.Factor
	}
	return b
}

// RetryConfig configures Retry.
type RetryConfig struct {
	// MaxAttempts counts the first call. Values below 1 mean a single call.
	MaxAttempts int
	Backoff     Backoff
	// RetryIf reports whether err is worth another attempt. Nil means DefaultRetryIf.
	RetryIf func(error) bool
	// OnRetry runs before sleeping ahead of the next attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig allows three attempts starting at 100ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Backoff: Backoff{
			Initial: 100 * time.Millisecond,
			Max:     10 * time.Second,
			Factor:  2,
			Jitter:  0.1,
		},
		RetryIf: DefaultRetryIf,
	}
}

// DefaultRetryIf never retries context cancellation. An AppError is retried
// only when it is flagged retryable; any other error is retried.
func DefaultRetryIf(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if appErr, ok := goerrors.AsAppError(err); ok {
		return appErr.Retryable
	}
	return true
}

// Retry calls fn until it succeeds, returns a non-retryable error, runs out of
// attempts or ctx ends. After the last attempt the last error is returned.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(cfg.MaxAttempts, 1)
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryIf
	}
	backoff := cfg.Backoff.orDefault()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= attempts || !retryIf(err) {
			return zero, err
		}

		delay := backoff.Delay(attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
