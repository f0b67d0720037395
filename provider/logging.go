package provider

import (
	"context"
	"time"

	"github.com/kbukum/gqlkit/logger"
)

// WithLogging returns a Middleware that logs each Execute call and, when the
// returned iterator is closed, how many values it yielded.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner Stream[I, O]) Stream[I, O] {
		return &loggingStream[I, O]{inner: inner, log: logger.OrNop(log)}
	}
}

type loggingStream[I, O any] struct {
	inner Stream[I, O]
	log   *logger.Logger
}

func (l *loggingStream[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingStream[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingStream[I, O]) Execute(ctx context.Context, input I) (Iterator[O], error) {
	start := time.Now()
	iter, err := l.inner.Execute(ctx, input)

	fields := logger.MergeWithDuration(logger.Fields(logger.FieldClient, l.inner.Name()), time.Since(start))
	if err != nil {
		l.log.Error("stream open failed", logger.MergeWithError(fields, err))
		return nil, err
	}
	if iter == nil {
		l.log.Debug("stream opened without results", fields)
		return nil, nil
	}
	l.log.Debug("stream opened", fields)

	return &onCloseIterator[O]{
		Iterator: iter,
		onClose: func(yielded int) {
			l.log.Debug("stream closed", logger.Fields(
				logger.FieldClient, l.inner.Name(),
				"yielded", yielded,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			))
		},
	}, nil
}
