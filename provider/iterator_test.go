package provider_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kbukum/gqlkit/provider"
)

func TestSliceIterator(t *testing.T) {
	got, err := drain(context.Background(), provider.SliceIterator("a", "b", "c"))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v, want [a b c]", got)
	}
}

func TestSliceIterator_StopsAfterClose(t *testing.T) {
	ctx := context.Background()
	it := provider.SliceIterator("a", "b")
	if _, ok, _ := it.Next(ctx); !ok {
		t.Fatal("expected first value")
	}
	_ = it.Close()
	if _, ok, err := it.Next(ctx); ok || err != nil {
		t.Errorf("expected exhausted after close, got ok=%v err=%v", ok, err)
	}
}

func TestSliceIterator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := provider.SliceIterator(1).Next(ctx)
	if ok || !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got ok=%v err=%v", ok, err)
	}
}

func TestChanIterator(t *testing.T) {
	ch := make(chan string, 2)
	ch <- "x"
	ch <- "y"
	close(ch)

	closed := 0
	it := provider.ChanIterator(ch, func() { closed++ })
	got, err := drain(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("got %v", got)
	}
	_ = it.Close()
	if closed != 1 {
		t.Errorf("onClose should run once, ran %d times", closed)
	}
}

func TestChanIterator_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	it := provider.ChanIterator(make(chan int), nil)
	if _, ok, err := it.Next(ctx); ok || !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got ok=%v err=%v", ok, err)
	}
	if err := it.Close(); err != nil {
		t.Errorf("nil onClose should be fine, got %v", err)
	}
}

func TestFromFunc(t *testing.T) {
	s := provider.FromFunc("words", func(_ context.Context, in string) (provider.Iterator[string], error) {
		return provider.SliceIterator(in, in), nil
	})
	if s.Name() != "words" || !s.IsAvailable(context.Background()) {
		t.Fatalf("unexpected name/availability: %s", s.Name())
	}
	it, err := s.Execute(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := drain(context.Background(), it)
	if !slices.Equal(got, []string{"hi", "hi"}) {
		t.Errorf("got %v", got)
	}
}
