package client

import (
	"context"

	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

// Static returns a transport that yields results for every request.
func Static[D any](name string, results ...result.Raw[D]) Transport[D] {
	return provider.FromFunc(name, func(context.Context, *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
		return provider.SliceIterator(results...), nil
	})
}

// Func adapts a request/response function into a transport. The results of
// one call are yielded in order.
func Func[D any](name string, fn func(ctx context.Context, d *request.Descriptor) ([]result.Raw[D], error)) Transport[D] {
	return provider.FromFunc(name, func(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
		results, err := fn(ctx, d)
		if err != nil {
			return nil, err
		}
		return provider.SliceIterator(results...), nil
	})
}
