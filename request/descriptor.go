package request

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/filter"
	"github.com/kbukum/gqlkit/validation"
)

// Descriptor is an immutable GraphQL request. Build one with Builder.
type Descriptor struct {
	id          string
	query       *string
	variables   map[string]any
	inclusive   []filter.Filter
	exclusive   []filter.Filter
	retries     int
	description *string
}

// ID returns the identifier assigned when the descriptor was built.
func (d *Descriptor) ID() string { return d.id }

// Query returns the query text, or a MISSING_QUERY error when none was set.
func (d *Descriptor) Query() (string, error) {
	if d.query == nil {
		return "", goerrors.MissingQuery(d.String())
	}
	return *d.query, nil
}

// HasQuery reports whether a query was set.
func (d *Descriptor) HasQuery() bool { return d.query != nil }

// Variables returns a copy of the query variables, or nil when unset.
func (d *Descriptor) Variables() map[string]any {
	return maps.Clone(d.variables)
}

// InclusiveFilters returns the inclusive filters, or nil when there are none.
// Callers treat nil as "no inclusive filtering".
func (d *Descriptor) InclusiveFilters() []filter.Filter {
	if len(d.inclusive) == 0 {
		return nil
	}
	return slices.Clone(d.inclusive)
}

// ExclusiveFilters returns the exclusive filters as stored; an empty sequence
// stays empty rather than nil.
func (d *Descriptor) ExclusiveFilters() []filter.Filter {
	return slices.Clone(d.exclusive)
}

// Retries returns the declared retry budget. Executing retries is up to the client.
func (d *Descriptor) Retries() int { return d.retries }

// Description returns the human-readable description, or "" when unset.
func (d *Descriptor) Description() string {
	if d.description == nil {
		return ""
	}
	return *d.description
}

// Validate checks that the descriptor can be dispatched: the query is set,
// the retry budget is not negative and every variable has a GraphQL name.
func (d *Descriptor) Validate() error {
	if _, err := d.Query(); err != nil {
		return err
	}
	return validation.New().
		Min("retries", d.retries, 0).
		VariableNames("variables", d.variables).
		Validate()
}

// CloneBuilder returns a builder seeded with a copy of d.
func (d *Descriptor) CloneBuilder() *Builder {
	return NewBuilder().WithCopyOf(d)
}

type descriptorState struct {
	ID          string         `json:"id,omitempty"`
	Query       *string        `json:"query"`
	Variables   map[string]any `json:"variables,omitempty"`
	Inclusive   []string       `json:"inclusiveFilters"`
	Exclusive   []string       `json:"exclusiveFilters"`
	Retries     int            `json:"retries"`
	Description *string        `json:"description,omitempty"`
}

// MarshalJSON serializes the descriptor state; filters are rendered with filter.Describe.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorState{
		ID:          d.id,
		Query:       d.query,
		Variables:   d.variables,
		Inclusive:   describe(d.inclusive),
		Exclusive:   describe(d.exclusive),
		Retries:     d.retries,
		Description: d.description,
	})
}

// String returns the JSON state, falling back to a Go rendering when the
// variables cannot be encoded.
func (d *Descriptor) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Descriptor{id:%s hasQuery:%t retries:%d}", d.id, d.query != nil, d.retries)
	}
	return string(b)
}

func describe(filters []filter.Filter) []string {
	out := make([]string, len(filters))
	for i, f := range filters {
		out[i] = filter.Describe(f)
	}
	return out
}
