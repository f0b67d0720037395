package provider

import (
	"context"
	"errors"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/resilience"
)

// ResilienceConfig selects the policies that guard opening a stream. Nil
// fields are skipped.
type ResilienceConfig struct {
	CircuitBreaker *resilience.CircuitBreakerConfig
	Retry          *resilience.RetryConfig
}

// IsEmpty reports whether no policy is configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.CircuitBreaker == nil && c.Retry == nil
}

// Guard holds the policies built from a ResilienceConfig. The breaker keeps
// its state across calls, so share one Guard per backend.
type Guard struct {
	breaker *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
}

// NewGuard builds the configured policies. An empty config gives a nil Guard,
// which calls straight through.
func NewGuard(cfg ResilienceConfig) *Guard {
	if cfg.IsEmpty() {
		return nil
	}
	g := &Guard{retry: cfg.Retry}
	if cfg.CircuitBreaker != nil {
		g.breaker = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	return g
}

// Breaker returns the circuit breaker, or nil.
func (g *Guard) Breaker() *resilience.CircuitBreaker {
	if g == nil {
		return nil
	}
	return g.breaker
}

// Guarded runs fn inside g: the breaker admits the call, then retry repeats it.
// Errors that are not AppErrors come back as one.
func Guarded[T any](ctx context.Context, g *Guard, fn func(context.Context) (T, error)) (T, error) {
	if g == nil {
		return fn(ctx)
	}
	call := fn
	if g.retry != nil {
		cfg := *g.retry
		call = func(ctx context.Context) (T, error) { return resilience.Retry(ctx, cfg, fn) }
	}
	if g.breaker == nil {
		v, err := call(ctx)
		return v, toAppError(err)
	}

	var v T
	var callErr error
	err := g.breaker.Execute(func() error {
		v, callErr = call(ctx)
		return callErr
	})
	return v, toAppError(err)
}

func toAppError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := goerrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return goerrors.ServiceUnavailable("provider").WithCause(err)
	case errors.Is(err, context.Canceled):
		return goerrors.Canceled("execute").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Timeout("execute").WithCause(err)
	}
	return err
}

// WithResilience guards s's Execute with cfg. Next calls on the returned
// iterator are not guarded. An empty config returns s unchanged.
func WithResilience[I, O any](s Stream[I, O], cfg ResilienceConfig) Stream[I, O] {
	return ResilienceMiddleware[I, O](cfg)(s)
}

// ResilienceMiddleware is WithResilience as a Middleware. Every stream it
// wraps shares one Guard.
func ResilienceMiddleware[I, O any](cfg ResilienceConfig) Middleware[I, O] {
	g := NewGuard(cfg)
	return func(inner Stream[I, O]) Stream[I, O] {
		if g == nil {
			return inner
		}
		return &guardedStream[I, O]{Stream: inner, guard: g}
	}
}

type guardedStream[I, O any] struct {
	Stream[I, O]
	guard *Guard
}

func (s *guardedStream[I, O]) Execute(ctx context.Context, in I) (Iterator[O], error) {
	return Guarded(ctx, s.guard, func(ctx context.Context) (Iterator[O], error) {
		return s.Stream.Execute(ctx, in)
	})
}
