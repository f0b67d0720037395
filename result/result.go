package result

import "github.com/kbukum/gqlkit/try"

// Raw is a response as delivered by a client. A nil Errors slice means the
// response carried no error list.
type Raw[D any] struct {
	Data    D
	Errors  []Error
	Loading bool
}

// Result is the normalized envelope handed to processors.
type Result[D any] struct {
	Data    D
	Errors  try.Try[[]Error]
	Loading bool
}

// FromRaw copies Data and Loading and wraps Errors: present (even if empty)
// becomes a success, absent becomes an UNWRAP_FAILED failure whose message
// renders the raw response.
func FromRaw[D any](raw Raw[D]) Result[D] {
	return Result[D]{
		Data:    raw.Data,
		Errors:  try.Unwrap(raw.Errors, raw.Errors != nil, "no error found for %+v", raw),
		Loading: raw.Loading,
	}
}

// HasErrors reports whether the response carried at least one error.
func (r Result[D]) HasErrors() bool {
	errs, err := r.Errors.Get()
	return err == nil && len(errs) > 0
}
