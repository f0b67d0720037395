package pipeline

import "context"

// step handles one upstream value. emit=false drops it; an error ends the pipeline.
type step[I, O any] func(ctx context.Context, in I) (out O, emit bool, err error)

func through[I, O any](p *Pipeline[I], s step[I, O]) *Pipeline[O] {
	return Defer(func(ctx context.Context) Iterator[O] {
		return &stageIter[I, O]{src: p.Open(ctx), step: s}
	})
}

// Map transforms each value. An error from fn ends the pipeline.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return through(p, func(ctx context.Context, in I) (O, bool, error) {
		out, err := fn(ctx, in)
		return out, err == nil, err
	})
}

// Filter drops values for which keep returns false.
func Filter[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return through(p, func(_ context.Context, in T) (T, bool, error) {
		return in, keep(in), nil
	})
}

// Tap observes each value and passes it on unchanged. An error from fn ends
// the pipeline.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return through(p, func(ctx context.Context, in T) (T, bool, error) {
		return in, true, fn(ctx, in)
	})
}

// OnError ends the pipeline at the first upstream error. fn decides whether
// the error is replaced by one last value (keep=true) or dropped.
//
// An error returned while the ctx passed to Next has ended is handed back
// unchanged and leaves the pipeline open, so a later Next can resume.
func OnError[T any](p *Pipeline[T], fn func(context.Context, error) (T, bool)) *Pipeline[T] {
	return Defer(func(ctx context.Context) Iterator[T] {
		return &catchIter[T]{src: p.Open(ctx), fn: fn}
	})
}

type stageIter[I, O any] struct {
	src  Iterator[I]
	step step[I, O]
}

func (it *stageIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	for {
		in, ok, err := it.src.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		out, emit, err := it.step(ctx, in)
		if err != nil {
			return zero, false, err
		}
		if emit {
			return out, true, nil
		}
	}
}

func (it *stageIter[I, O]) Close() error { return it.src.Close() }

type catchIter[T any] struct {
	src  Iterator[T]
	fn   func(context.Context, error) (T, bool)
	done bool
}

func (it *catchIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	v, ok, err := it.src.Next(ctx)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return zero, false, err
		}
		it.done = true
		if last, keep := it.fn(ctx, err); keep {
			return last, true, nil
		}
		return zero, false, nil
	case !ok:
		it.done = true
	}
	return v, ok, nil
}

func (it *catchIter[T]) Close() error { return it.src.Close() }
