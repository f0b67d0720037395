package handler_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kbukum/gqlkit/handler"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

type country struct {
	Code string
	Name string
}

var errBoom = errors.New("boom")

// scriptedClient yields a fixed list of results, or fails Execute when err is set.
type scriptedClient struct {
	results []result.Raw[country]
	err     error
	calls   atomic.Int32
	last    atomic.Pointer[request.Descriptor]
}

func (c *scriptedClient) Name() string                       { return "scripted" }
func (c *scriptedClient) IsAvailable(_ context.Context) bool { return true }

func (c *scriptedClient) Execute(_ context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[country]], error) {
	c.calls.Add(1)
	c.last.Store(d)
	if c.err != nil {
		return nil, c.err
	}
	return provider.SliceIterator(c.results...), nil
}

// liveClient hands out results pushed on feed and reports when its
// dispatch context ends and when its iterator is closed.
type liveClient struct {
	feed     chan result.Raw[country]
	canceled chan struct{}
	released atomic.Bool
}

func newLiveClient() *liveClient {
	return &liveClient{
		feed:     make(chan result.Raw[country]),
		canceled: make(chan struct{}),
	}
}

func (c *liveClient) stream() handler.Client[country] {
	return provider.FromFunc("live", func(ctx context.Context, _ *request.Descriptor) (provider.Iterator[result.Raw[country]], error) {
		go func() {
			<-ctx.Done()
			close(c.canceled)
		}()
		return provider.ChanIterator(c.feed, func() { c.released.Store(true) }), nil
	})
}

// brokenIter yields one result, then fails.
type brokenIter struct {
	yielded bool
}

func (it *brokenIter) Next(_ context.Context) (result.Raw[country], bool, error) {
	if !it.yielded {
		it.yielded = true
		return raw("DE", "Germany"), true, nil
	}
	return result.Raw[country]{}, false, errBoom
}

func (it *brokenIter) Close() error { return nil }

func raw(code, name string) result.Raw[country] {
	return result.Raw[country]{Data: country{Code: code, Name: name}, Errors: []result.Error{}}
}

func newHandler(c handler.Client[country]) *handler.Handler[country] {
	return handler.NewBuilder[country]().WithClient(c).Build()
}

// countingGen builds a query for the previous value and counts its calls.
func countingGen(calls *atomic.Int32) handler.Generator[string] {
	return func(_ context.Context, code string) (*request.Descriptor, error) {
		calls.Add(1)
		return request.NewBuilder().
			WithQueryString("query($code: ID!) { country(code: $code) { name } }").
			WithVariables(map[string]any{"code": code}).
			Build(), nil
	}
}

func nameOf(_ context.Context, r result.Result[country]) (string, error) {
	return r.Data.Name, nil
}
