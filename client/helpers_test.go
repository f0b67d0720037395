package client_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/kbukum/gqlkit/client"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

type country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var errTransient = errors.New("connection reset")

// flakyTransport fails the first failFirst Execute calls with failWith.
type flakyTransport struct {
	failFirst int32
	failWith  error
	calls     atomic.Int32
}

func (t *flakyTransport) Name() string                       { return "flaky" }
func (t *flakyTransport) IsAvailable(_ context.Context) bool { return true }

func (t *flakyTransport) Execute(_ context.Context, _ *request.Descriptor) (provider.Iterator[result.Raw[country]], error) {
	if t.calls.Add(1) <= t.failFirst {
		err := t.failWith
		if err == nil {
			err = errTransient
		}
		return nil, err
	}
	return provider.SliceIterator(result.Raw[country]{
		Data:   country{Code: "DE", Name: "Germany"},
		Errors: []result.Error{},
	}), nil
}

// trace records the order in which tagged middlewares run.
type trace struct {
	mu    sync.Mutex
	names []string
}

func (tr *trace) tag(name string) client.Middleware[country] {
	return func(inner client.Transport[country]) client.Transport[country] {
		return provider.FromFunc(inner.Name(), func(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[country]], error) {
			tr.mu.Lock()
			tr.names = append(tr.names, name)
			tr.mu.Unlock()
			return inner.Execute(ctx, d)
		})
	}
}

func (tr *trace) reset() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := tr.names
	tr.names = nil
	return out
}

func drain(ctx context.Context, it provider.Iterator[result.Raw[country]]) []result.Raw[country] {
	defer it.Close()
	var out []result.Raw[country]
	for {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			return out
		}
		out = append(out, v)
	}
}

func query() *request.Builder {
	return request.NewBuilder().WithQueryString("query($code: ID!) { country(code: $code) { name } }")
}
