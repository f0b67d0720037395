// Package resilience provides the retry and circuit breaker policies used when
// opening GraphQL result streams.
//
// Retry re-runs an operation with exponential backoff while the error is
// retryable. AppErrors carry their own retryable flag; other errors are retried
// unless they come from context cancellation:
//
//	it, err := resilience.Retry(ctx, cfg, func(ctx context.Context) (provider.Iterator[T], error) {
//	    return transport.Execute(ctx, d)
//	})
//
// CircuitBreaker fails fast once a client keeps failing and lets a limited
// number of probe calls through after a cool-down:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("countries"))
//	err := cb.Execute(func() error { ... })
//
// RetrySettings and CircuitBreakerSettings are the configuration-file forms of
// both policies.
package resilience
