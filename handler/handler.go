package handler

import (
	"context"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/logger"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

// Client executes a descriptor and yields raw results over time. It owns
// transport, middleware selection and the retry loop.
type Client[D any] interface {
	provider.Stream[*request.Descriptor, result.Raw[D]]
}

// Generator turns the previous value into the next request.
type Generator[P any] func(ctx context.Context, previous P) (*request.Descriptor, error)

// Processor turns one normalized result into an output value.
type Processor[D, O any] func(ctx context.Context, res result.Result[D]) (O, error)

// Handler dispatches requests through a shared client. It is immutable once built.
type Handler[D any] struct {
	client Client[D]
	log    *logger.Logger
}

// Client returns the configured client, or a MISSING_CLIENT error.
func (h *Handler[D]) Client() (Client[D], error) {
	if h == nil || h.client == nil {
		return nil, goerrors.MissingClient()
	}
	return h.client, nil
}

// CloneBuilder returns a builder seeded with h.
func (h *Handler[D]) CloneBuilder() *Builder[D] {
	return NewBuilder[D]().WithCopyOf(h)
}

func (h *Handler[D]) logger() *logger.Logger {
	return logger.OrNop(h.log).WithComponent("handler")
}

// Builder accumulates handler settings.
type Builder[D any] struct {
	client Client[D]
	log    *logger.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder[D any]() *Builder[D] {
	return &Builder[D]{}
}

// WithClient sets the client; nil clears it.
func (b *Builder[D]) WithClient(client Client[D]) *Builder[D] {
	b.client = client
	return b
}

// WithLogger sets the logger used for stage failures; nil disables logging.
func (b *Builder[D]) WithLogger(log *logger.Logger) *Builder[D] {
	b.log = log
	return b
}

// WithCopyOf copies every setting of h. A nil h is a no-op.
func (b *Builder[D]) WithCopyOf(h *Handler[D]) *Builder[D] {
	if h == nil {
		return b
	}
	return b.WithClient(h.client).WithLogger(h.log)
}

// Build returns a new Handler. A missing client is reported when the handler is used.
func (b *Builder[D]) Build() *Handler[D] {
	return &Handler[D]{client: b.client, log: b.log}
}
