package try

import (
	"fmt"

	goerrors "github.com/kbukum/gqlkit/errors"
)

// Try is either a success value or a failure error. The zero value is a
// success holding the zero T.
type Try[T any] struct {
	value T
	err   error
}

// Success wraps v as a successful Try.
func Success[T any](v T) Try[T] {
	return Try[T]{value: v}
}

// Failure wraps err as a failed Try. A nil err is replaced by an internal
// error so a Failure never reads back as a success.
func Failure[T any](err error) Try[T] {
	if err == nil {
		err = goerrors.Internal(nil).WithDetail("reason", "failure constructed without error")
	}
	return Try[T]{err: err}
}

// Of builds a Try from a conventional (value, error) pair.
func Of[T any](v T, err error) Try[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}

// Unwrap returns Success(v) when present is true, otherwise a failure carrying
// an UNWRAP_FAILED error with the formatted diagnostic.
func Unwrap[T any](v T, present bool, format string, args ...any) Try[T] {
	if present {
		return Success(v)
	}
	return Failure[T](goerrors.UnwrapFailed(fmt.Sprintf(format, args...)))
}

// FromPtr returns Success(*p) when p is non-nil, else an UNWRAP_FAILED failure.
func FromPtr[T any](p *T, format string, args ...any) Try[T] {
	if p == nil {
		var zero T
		return Unwrap(zero, false, format, args...)
	}
	return Success(*p)
}

// Call runs fn and captures both its error and any panic as a failure.
func Call[T any](fn func() (T, error)) (t Try[T]) {
	defer func() {
		if r := recover(); r != nil {
			t = Failure[T](goerrors.Recovered(r))
		}
	}()
	return Of(fn())
}

// IsSuccess reports whether t holds a value.
func (t Try[T]) IsSuccess() bool { return t.err == nil }

// IsFailure reports whether t holds an error.
func (t Try[T]) IsFailure() bool { return t.err != nil }

// Get returns the value and error; exactly one is meaningful.
func (t Try[T]) Get() (T, error) { return t.value, t.err }

// Err returns the failure error, or nil for a success.
func (t Try[T]) Err() error { return t.err }

// OrElse returns the value, or def when t is a failure.
func (t Try[T]) OrElse(def T) T {
	if t.err != nil {
		return def
	}
	return t.value
}

// String renders t for diagnostics.
func (t Try[T]) String() string {
	if t.err != nil {
		return fmt.Sprintf("Failure(%v)", t.err)
	}
	return fmt.Sprintf("Success(%v)", t.value)
}

// Map applies fn to a success value. Failures pass through untouched and fn
// is not called. Errors and panics from fn become failures.
func Map[T, U any](t Try[T], fn func(T) (U, error)) Try[U] {
	if t.err != nil {
		return Failure[U](t.err)
	}
	return Call(func() (U, error) { return fn(t.value) })
}

// FlatMap applies fn to a success value and returns its Try directly.
func FlatMap[T, U any](t Try[T], fn func(T) Try[U]) Try[U] {
	if t.err != nil {
		return Failure[U](t.err)
	}
	return Call(func() (U, error) { return fn(t.value).Get() })
}

// MapErr rewrites the error of a failure; successes pass through.
func MapErr[T any](t Try[T], fn func(error) error) Try[T] {
	if t.err == nil {
		return t
	}
	return Failure[T](fn(t.err))
}
