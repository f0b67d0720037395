package provider

import (
	"context"
	"time"

	"github.com/kbukum/gqlkit/observability"
)

// WithMetrics returns a Middleware that records dispatch count and latency
// for each Execute call and one result count per yielded value.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner Stream[I, O]) Stream[I, O] {
		return &metricsStream[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsStream[I, O any] struct {
	inner   Stream[I, O]
	metrics *observability.Metrics
}

func (m *metricsStream[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsStream[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsStream[I, O]) Execute(ctx context.Context, input I) (Iterator[O], error) {
	start := time.Now()
	iter, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	if err != nil {
		m.metrics.RecordError(ctx, "dispatch", m.inner.Name())
		m.metrics.RecordDispatch(ctx, m.inner.Name(), "error", duration)
		return nil, err
	}
	m.metrics.RecordDispatch(ctx, m.inner.Name(), "ok", duration)
	if iter == nil {
		return nil, nil
	}

	return &metricsIterator[O]{Iterator: iter, metrics: m.metrics, client: m.inner.Name()}, nil
}

type metricsIterator[O any] struct {
	Iterator[O]
	metrics *observability.Metrics
	client  string
}

func (it *metricsIterator[O]) Next(ctx context.Context) (O, bool, error) {
	v, ok, err := it.Iterator.Next(ctx)
	switch {
	case err != nil:
		it.metrics.RecordError(ctx, "stream", it.client)
	case ok:
		it.metrics.RecordResult(ctx, it.client)
	}
	return v, ok, err
}
