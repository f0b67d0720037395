package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goerrors "github.com/kbukum/gqlkit/errors"
)

var errUpstream = goerrors.DispatchFailed("countries", errors.New("connection refused"))

func trip(cb *CircuitBreaker, n int) {
	for range n {
		_ = cb.Execute(func() error { return errUpstream })
	}
}

func requireState(t *testing.T, cb *CircuitBreaker, want State) {
	t.Helper()
	if got := cb.State(); got != want {
		t.Fatalf("breaker %s: want state %s, got %s", cb.Name(), want, got)
	}
}

func TestCircuitBreaker_AllowsRequestsWhenClosed(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("countries"))

	requireState(t, cb, StateClosed)
	if cb.Name() != "countries" {
		t.Errorf("expected name countries, got %s", cb.Name())
	}

	var called bool
	if err := cb.Execute(func() error { called = true; return nil }); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("function was not called")
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "countries", MaxFailures: 3, Timeout: time.Hour})

	trip(cb, 3)
	requireState(t, cb, StateOpen)

	err := cb.Execute(func() error {
		t.Error("function should not have been called")
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "c", MaxFailures: 2, Timeout: time.Hour})

	trip(cb, 1)
	_ = cb.Execute(func() error { return nil })
	trip(cb, 1)

	requireState(t, cb, StateClosed)
}

func TestCircuitBreaker_IgnoresRequestErrors(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "c", MaxFailures: 1, Timeout: time.Hour})

	for _, err := range []error{
		goerrors.InvalidInput("variables", "code is required"),
		goerrors.MissingQuery("{}"),
		context.Canceled,
	} {
		got := cb.Execute(func() error { return err })
		if !errors.Is(got, err) {
			t.Errorf("expected %v passed through, got %v", err, got)
		}
	}

	requireState(t, cb, StateClosed)
	if cb.Failures() != 0 {
		t.Errorf("expected 0 failures, got %d", cb.Failures())
	}
}

func TestCircuitBreaker_CustomIsFailure(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "c",
		MaxFailures: 1,
		Timeout:     time.Hour,
		IsFailure:   func(error) bool { return false },
	})

	trip(cb, 5)
	requireState(t, cb, StateClosed)
}

func TestCircuitBreaker_HalfOpenTransitions(t *testing.T) {
	tests := []struct {
		name  string
		probe error
		want  State
	}{
		{"success closes", nil, StateClosed},
		{"failure reopens", errUpstream, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(CircuitBreakerConfig{
				Name:             "c",
				MaxFailures:      1,
				Timeout:          10 * time.Millisecond,
				HalfOpenMaxCalls: 1,
			})

			trip(cb, 1)
			time.Sleep(15 * time.Millisecond)
			requireState(t, cb, StateHalfOpen)

			_ = cb.Execute(func() error { return tt.probe })
			requireState(t, cb, tt.want)
		})
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "c",
		MaxFailures:      1,
		Timeout:          10 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	})
	trip(cb, 1)
	time.Sleep(15 * time.Millisecond)

	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(func() error { <-release; return nil })
	}()

	// Wait until the probe holds the only half-open slot.
	deadline := time.Now().Add(time.Second)
	for {
		cb.mu.Lock()
		calls := cb.probes
		cb.mu.Unlock()
		if calls == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected second probe rejected, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Errorf("probe failed: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenNeedsEveryProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "c",
		MaxFailures:      1,
		Timeout:          10 * time.Millisecond,
		HalfOpenMaxCalls: 2,
	})
	trip(cb, 1)
	time.Sleep(15 * time.Millisecond)

	_ = cb.Execute(func() error { return nil })
	requireState(t, cb, StateHalfOpen)
	_ = cb.Execute(func() error { return nil })
	requireState(t, cb, StateClosed)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "c", MaxFailures: 1, Timeout: time.Hour})

	trip(cb, 1)
	cb.Reset()

	requireState(t, cb, StateClosed)
	if cb.Failures() != 0 {
		t.Errorf("expected 0 failures after reset, got %d", cb.Failures())
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var changes []struct{ from, to State }
	var names []string
	var mu sync.Mutex

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "countries",
		MaxFailures: 1,
		Timeout:     10 * time.Millisecond,
		OnStateChange: func(name string, from, to State) {
			mu.Lock()
			changes = append(changes, struct{ from, to State }{from, to})
			names = append(names, name)
			mu.Unlock()
		},
	})

	trip(cb, 1)
	time.Sleep(15 * time.Millisecond)
	_ = cb.State()

	mu.Lock()
	defer mu.Unlock()

	if len(changes) != 2 {
		t.Fatalf("expected 2 state changes, got %d", len(changes))
	}
	if changes[0].from != StateClosed || changes[0].to != StateOpen {
		t.Errorf("expected closed->open, got %s->%s", changes[0].from, changes[0].to)
	}
	if changes[1].from != StateOpen || changes[1].to != StateHalfOpen {
		t.Errorf("expected open->half-open, got %s->%s", changes[1].from, changes[1].to)
	}
	if names[0] != "countries" {
		t.Errorf("expected breaker name in callback, got %s", names[0])
	}
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("c"))

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cb.Execute(func() error { return nil })
			_ = cb.State()
			_ = cb.Failures()
		}()
	}
	wg.Wait()

	requireState(t, cb, StateClosed)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
