package provider

import (
	"context"

	"github.com/kbukum/gqlkit/observability"
)

// WithTracing returns a Middleware that opens an OpenTelemetry span per
// Execute call. The span stays open until the returned iterator is closed.
// The span name is "{serviceName}.{providerName}".
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner Stream[I, O]) Stream[I, O] {
		return &tracingStream[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingStream[I, O any] struct {
	inner       Stream[I, O]
	serviceName string
}

func (t *tracingStream[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingStream[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingStream[I, O]) Execute(ctx context.Context, input I) (Iterator[O], error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name(),
		observability.AttrServiceName.String(t.serviceName),
		observability.AttrOperationName.String(t.inner.Name()),
	)

	iter, err := t.inner.Execute(ctx, input)
	if err != nil {
		observability.RecordError(ctx, err)
		span.End()
		return nil, err
	}
	if iter == nil {
		observability.Annotate(ctx, observability.AttrResultCount.Int(0))
		span.End()
		return nil, nil
	}

	return &onCloseIterator[O]{
		Iterator: iter,
		onClose: func(yielded int) {
			observability.Annotate(ctx, observability.AttrResultCount.Int(yielded))
			span.End()
		},
	}, nil
}
