package request

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/kbukum/gqlkit/filter"
)

// Builder accumulates descriptor fields. Setters overwrite prior values and
// never validate; Build snapshots the current state.
type Builder struct {
	query       *string
	variables   map[string]any
	inclusive   []filter.Filter
	exclusive   []filter.Filter
	retries     int
	description *string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		inclusive: []filter.Filter{},
		exclusive: []filter.Filter{},
	}
}

// WithQuery sets the query text; nil clears it.
func (b *Builder) WithQuery(query *string) *Builder {
	b.query = query
	return b
}

// WithQueryString sets the query text.
func (b *Builder) WithQueryString(query string) *Builder {
	return b.WithQuery(&query)
}

// WithVariables sets the query variables; nil clears them.
func (b *Builder) WithVariables(variables map[string]any) *Builder {
	b.variables = maps.Clone(variables)
	return b
}

// WithInclusiveFilters sets the inclusive middleware filters.
func (b *Builder) WithInclusiveFilters(filters ...filter.Filter) *Builder {
	b.inclusive = cloneFilters(filters)
	return b
}

// WithExclusiveFilters sets the exclusive middleware filters.
func (b *Builder) WithExclusiveFilters(filters ...filter.Filter) *Builder {
	b.exclusive = cloneFilters(filters)
	return b
}

// WithDescription sets the request description; nil clears it.
func (b *Builder) WithDescription(description *string) *Builder {
	b.description = description
	return b
}

// WithRetries sets the retry budget.
func (b *Builder) WithRetries(retries int) *Builder {
	b.retries = retries
	return b
}

// WithCopyOf copies every field of d into the builder. A nil d is a no-op.
func (b *Builder) WithCopyOf(d *Descriptor) *Builder {
	if d == nil {
		return b
	}
	return b.
		WithQuery(d.query).
		WithVariables(d.variables).
		WithInclusiveFilters(d.inclusive...).
		WithExclusiveFilters(d.exclusive...).
		WithDescription(d.description).
		WithRetries(d.retries)
}

// Build returns a new immutable Descriptor with a fresh ID.
func (b *Builder) Build() *Descriptor {
	return &Descriptor{
		id:          uuid.NewString(),
		query:       clonePtr(b.query),
		variables:   maps.Clone(b.variables),
		inclusive:   slices.Clone(b.inclusive),
		exclusive:   slices.Clone(b.exclusive),
		retries:     b.retries,
		description: clonePtr(b.description),
	}
}

// cloneFilters copies filters, keeping an empty sequence non-nil.
func cloneFilters(filters []filter.Filter) []filter.Filter {
	out := make([]filter.Filter, len(filters))
	copy(out, filters)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
