package client

import (
	"slices"
	"sync"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

// Transport executes a descriptor against a GraphQL endpoint.
type Transport[D any] = provider.Stream[*request.Descriptor, result.Raw[D]]

// Middleware wraps a Transport.
type Middleware[D any] = provider.Middleware[*request.Descriptor, result.Raw[D]]

// Standard middleware names. The "group:name" form lets filters select a
// whole group, e.g. filter.Named("observability:*").
const (
	MiddlewareTracing        = "observability:tracing"
	MiddlewareMetrics        = "observability:metrics"
	MiddlewareLogging        = "logging"
	MiddlewareSchema         = "validation:schema"
	MiddlewareCircuitBreaker = "resilience:circuit_breaker"
	MiddlewareRetry          = "resilience:retry"
)

type entry[D any] struct {
	name string
	mw   Middleware[D]
}

// Registry holds named middlewares in registration order. The first
// registered middleware is the outermost. It is safe for concurrent use.
type Registry[D any] struct {
	mu      sync.RWMutex
	entries []entry[D]
}

// NewRegistry creates an empty registry.
func NewRegistry[D any]() *Registry[D] {
	return &Registry[D]{}
}

// Register adds mw under name. Registering an existing name replaces the
// middleware and keeps its position.
func (r *Registry[D]) Register(name string, mw Middleware[D]) error {
	if name == "" {
		return goerrors.InvalidInput("name", "middleware name is required")
	}
	if mw == nil {
		return goerrors.InvalidInput("middleware", "middleware "+name+" is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(name); i >= 0 {
		r.entries[i].mw = mw
		return nil
	}
	r.entries = append(r.entries, entry[D]{name: name, mw: mw})
	return nil
}

// Get returns the middleware registered under name.
func (r *Registry[D]) Get(name string) (Middleware[D], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(name); i >= 0 {
		return r.entries[i].mw, true
	}
	return nil, false
}

// Names returns the registered names, outermost first.
func (r *Registry[D]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Chain composes the named middlewares in the given order. Unknown names are skipped.
func (r *Registry[D]) Chain(names []string) Middleware[D] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mws := make([]Middleware[D], 0, len(names))
	for _, name := range names {
		if i := r.indexOf(name); i >= 0 {
			mws = append(mws, r.entries[i].mw)
		}
	}
	return provider.Chain(mws...)
}

func (r *Registry[D]) indexOf(name string) int {
	return slices.IndexFunc(r.entries, func(e entry[D]) bool { return e.name == name })
}
