package handler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kbukum/gqlkit/pipeline"
	"github.com/kbukum/gqlkit/try"
)

// Stream delivers the values of one request in client order. Close it when
// done; closing cancels the client dispatch.
type Stream[O any] struct {
	iter   pipeline.Iterator[try.Try[O]]
	done   context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

func newStream[O any](iter pipeline.Iterator[try.Try[O]], done context.Context, cancel context.CancelFunc) *Stream[O] {
	if cancel == nil {
		cancel = func() {}
	}
	return &Stream[O]{iter: iter, done: done, cancel: cancel}
}

// Next returns the next value. It returns (zero, false, nil) once the stream
// is exhausted or closed, and (zero, false, ctx.Err()) when ctx ends first.
// A read abandoned that way leaves the stream open for the next call.
// A value that arrives after Close is dropped.
func (s *Stream[O]) Next(ctx context.Context) (try.Try[O], bool, error) {
	var zero try.Try[O]
	if s.closed.Load() {
		return zero, false, nil
	}

	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		// Close may have skipped the iterator while this call held the lock.
		if s.closed.Load() && s.mu.TryLock() {
			s.closeIter()
			s.mu.Unlock()
		}
	}()

	if s.closed.Load() {
		return zero, false, nil
	}
	if s.canceled() {
		return zero, false, ctx.Err()
	}
	v, ok, err := s.pull(ctx)
	if s.closed.Load() {
		return zero, false, nil
	}
	if err != nil || !ok {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, false, ctxErr
		}
		if s.canceled() {
			return zero, false, nil
		}
		return zero, false, err
	}
	return v, true, nil
}

// canceled reports whether the dispatch context has ended.
func (s *Stream[O]) canceled() bool {
	return s.done != nil && s.done.Err() != nil
}

// pull reads from the iterator with a context that also ends when the
// stream is closed, so Close unblocks a pending read.
func (s *Stream[O]) pull(ctx context.Context) (try.Try[O], bool, error) {
	if s.done == nil {
		return s.iter.Next(ctx)
	}
	pullCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.done, cancel)
	defer func() {
		stop()
		cancel()
	}()
	return s.iter.Next(pullCtx)
}

// Close cancels the dispatch and releases the client iterator. It is
// idempotent and safe to call while another goroutine is inside Next.
func (s *Stream[O]) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.cancel()
	if s.mu.TryLock() {
		defer s.mu.Unlock()
		return s.closeIter()
	}
	return nil
}

// closeIter closes the iterator once. Callers hold s.mu.
func (s *Stream[O]) closeIter() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.iter.Close()
	})
	return s.closeErr
}

// Chan delivers the stream on a channel until it is exhausted, closed or ctx
// ends. The channel is closed and the stream released when delivery stops.
func (s *Stream[O]) Chan(ctx context.Context) <-chan try.Try[O] {
	ch := make(chan try.Try[O])
	go func() {
		defer close(ch)
		defer s.Close()
		for {
			v, ok, err := s.Next(ctx)
			if err != nil || !ok {
				return
			}
			select {
			case ch <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Collect drains the stream and closes it.
func (s *Stream[O]) Collect(ctx context.Context) ([]try.Try[O], error) {
	defer s.Close()
	var out []try.Try[O]
	for {
		v, ok, err := s.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
