package provider

import (
	"context"
	"sync"
)

// Iterator provides pull-based sequential access to a stream of values.
// The consumer calls Next() to retrieve values one at a time.
// Close must be called when done to release resources.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// SliceIterator yields items in order.
func SliceIterator[T any](items ...T) Iterator[T] {
	return &sliceIterator[T]{items: items}
}

type sliceIterator[T any] struct {
	mu     sync.Mutex
	items  []T
	index  int
	closed bool
}

func (it *sliceIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed || it.index >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.index]
	it.index++
	return v, true, nil
}

func (it *sliceIterator[T]) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.closed = true
	return nil
}

// ChanIterator yields values received from ch until it is closed. onClose,
// if non-nil, runs once when the iterator is closed.
func ChanIterator[T any](ch <-chan T, onClose func()) Iterator[T] {
	return &chanIterator[T]{ch: ch, onClose: onClose}
}

type chanIterator[T any] struct {
	ch      <-chan T
	onClose func()
	once    sync.Once
}

func (it *chanIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case v, open := <-it.ch:
		if !open {
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *chanIterator[T]) Close() error {
	it.once.Do(func() {
		if it.onClose != nil {
			it.onClose()
		}
	})
	return nil
}

// onCloseIterator runs a hook after the inner iterator is closed.
type onCloseIterator[T any] struct {
	Iterator[T]
	once    sync.Once
	onClose func(yielded int)
	yielded int
}

func (it *onCloseIterator[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := it.Iterator.Next(ctx)
	if ok {
		it.yielded++
	}
	return v, ok, err
}

func (it *onCloseIterator[T]) Close() error {
	err := it.Iterator.Close()
	it.once.Do(func() { it.onClose(it.yielded) })
	return err
}
