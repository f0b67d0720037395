package provider

import "slices"

// Middleware wraps a Stream with cross-cutting behavior.
type Middleware[I, O any] func(Stream[I, O]) Stream[I, O]

// Chain composes middlewares so the first one listed is outermost:
// Chain(a, b, c)(s) is a(b(c(s))). Nil entries are skipped.
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(s Stream[I, O]) Stream[I, O] {
		for _, mw := range slices.Backward(middlewares) {
			if mw != nil {
				s = mw(s)
			}
		}
		return s
	}
}
