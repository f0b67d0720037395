// Package provider implements the generic stream provider abstraction that
// gqlkit clients are built on.
//
// A Stream[I, O] takes one input and yields many outputs through a pull-based
// Iterator[O]. Middleware[I, O] wraps a Stream to add cross-cutting behavior;
// Chain composes several:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("catalog"),
//	)(rawStream)
//
// WithResilience adds a circuit breaker and retry around opening the stream:
//
//	resilient := provider.WithResilience(rawStream, provider.ResilienceConfig{
//	    Retry: &resilience.RetryConfig{MaxAttempts: 3},
//	})
package provider
