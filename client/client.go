package client

import (
	"context"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/filter"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

// Client dispatches descriptors through the middlewares their filters select.
// It satisfies handler.Client.
type Client[D any] struct {
	name      string
	transport Transport[D]
	registry  *Registry[D]
}

// New creates a client. A nil registry means no middleware.
func New[D any](name string, transport Transport[D], registry *Registry[D]) *Client[D] {
	if registry == nil {
		registry = NewRegistry[D]()
	}
	return &Client[D]{name: name, transport: transport, registry: registry}
}

// Name returns the client name.
func (c *Client[D]) Name() string { return c.name }

// IsAvailable reports whether the transport is ready.
func (c *Client[D]) IsAvailable(ctx context.Context) bool {
	return c.transport != nil && c.transport.IsAvailable(ctx)
}

// Registry returns the middleware registry.
func (c *Client[D]) Registry() *Registry[D] { return c.registry }

// Selected returns the middleware names d selects, outermost first.
func (c *Client[D]) Selected(d *request.Descriptor) []string {
	return filter.Select(c.registry.Names(), d.InclusiveFilters(), d.ExclusiveFilters())
}

// Execute runs d through its selected middlewares and the transport.
func (c *Client[D]) Execute(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
	if d == nil {
		return nil, goerrors.InvalidInput("descriptor", "must not be nil")
	}
	if c.transport == nil {
		return nil, goerrors.ServiceUnavailable(c.name).WithDetail("reason", "no transport")
	}
	stream := c.registry.Chain(c.Selected(d))(c.transport)
	iter, err := stream.Execute(ctx, d)
	if err == nil && iter == nil {
		iter = provider.SliceIterator[result.Raw[D]]()
	}
	return iter, err
}
