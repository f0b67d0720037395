package provider

import "context"

// Provider is what every backend reports about itself.
type Provider interface {
	Name() string
	// IsAvailable reports whether the backend can take requests now.
	IsAvailable(ctx context.Context) bool
}

// Stream takes one input and yields outputs over time. A GraphQL client is a
// Stream: cache-then-network may yield a partial result before the final one.
type Stream[I, O any] interface {
	Provider
	// Execute starts the request. Canceling ctx must stop the stream; the
	// caller closes the returned Iterator when done.
	Execute(ctx context.Context, input I) (Iterator[O], error)
}

// StreamFunc is the signature of a Stream's Execute method.
type StreamFunc[I, O any] func(ctx context.Context, input I) (Iterator[O], error)

// FromFunc adapts fn into an always-available Stream.
func FromFunc[I, O any](name string, fn StreamFunc[I, O]) Stream[I, O] {
	return funcStream[I, O]{name: name, fn: fn}
}

type funcStream[I, O any] struct {
	name string
	fn   StreamFunc[I, O]
}

func (f funcStream[I, O]) Name() string                     { return f.name }
func (f funcStream[I, O]) IsAvailable(context.Context) bool { return true }

func (f funcStream[I, O]) Execute(ctx context.Context, input I) (Iterator[O], error) {
	return f.fn(ctx, input)
}
