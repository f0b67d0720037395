package pipeline

import "context"

// Iterator is a pull-based source of values. It has the same method set as
// provider.Iterator[T], so client iterators are accepted directly.
type Iterator[T any] interface {
	// Next returns (zero, false, nil) once the source is exhausted.
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Pipeline is a lazy chain of stages. Nothing is pulled until Open,
// Collect or ForEach.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// From wraps an existing iterator. The pipeline can be opened once.
func From[T any](src Iterator[T]) *Pipeline[T] {
	return Defer(func(context.Context) Iterator[T] { return src })
}

// Of yields values in order.
func Of[T any](values ...T) *Pipeline[T] {
	return Defer(func(context.Context) Iterator[T] { return &valuesIter[T]{values: values} })
}

// Empty yields nothing.
func Empty[T any]() *Pipeline[T] { return Of[T]() }

// Defer builds the source when the pipeline is opened.
func Defer[T any](open func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{open: open}
}

// Open starts the pipeline. The caller closes the returned iterator, which
// closes every stage down to the source.
func (p *Pipeline[T]) Open(ctx context.Context) Iterator[T] {
	return p.open(ctx)
}

// ForEach pulls every value into fn and stops at the first error.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	it := p.Open(ctx)
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		switch {
		case err != nil:
			return err
		case !ok:
			return nil
		}
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
}

// Collect returns every value, plus whatever was pulled before an error.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

type valuesIter[T any] struct {
	values []T
	closed bool
}

func (it *valuesIter[T]) Next(context.Context) (T, bool, error) {
	var zero T
	if it.closed || len(it.values) == 0 {
		return zero, false, nil
	}
	v := it.values[0]
	it.values = it.values[1:]
	return v, true, nil
}

func (it *valuesIter[T]) Close() error {
	it.closed = true
	return nil
}
