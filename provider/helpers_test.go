package provider_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kbukum/gqlkit/provider"
)

// wordStream yields the input split into words; failFirst makes the first
// n Execute calls fail.
type wordStream struct {
	name      string
	failFirst int32
	calls     atomic.Int32
	available bool
}

var errTransient = errors.New("transient failure")

func newWordStream(name string) *wordStream {
	return &wordStream{name: name, available: true}
}

func (s *wordStream) Name() string                       { return s.name }
func (s *wordStream) IsAvailable(_ context.Context) bool { return s.available }

func (s *wordStream) Execute(_ context.Context, in []string) (provider.Iterator[string], error) {
	if s.calls.Add(1) <= s.failFirst {
		return nil, errTransient
	}
	return provider.SliceIterator(in...), nil
}

// brokenIter yields one value, then fails.
type brokenIter struct {
	yielded bool
}

func (it *brokenIter) Next(_ context.Context) (string, bool, error) {
	if !it.yielded {
		it.yielded = true
		return "partial", true, nil
	}
	return "", false, errTransient
}

func (it *brokenIter) Close() error { return nil }

func drain(ctx context.Context, it provider.Iterator[string]) ([]string, error) {
	defer it.Close()
	var out []string
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
