package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	goerrors "github.com/kbukum/gqlkit/errors"
)

// graphQLName is the GraphQL Name production: /[_A-Za-z][_0-9A-Za-z]*/.
var graphQLName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates field errors from chained checks. Nothing fails
// until Validate is called.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the recorded failures in check order.
func (v *Validator) Errors() []FieldError { return slices.Clone(v.errors) }

// Validate returns nil, or one INVALID_INPUT AppError whose "fields" detail
// holds every FieldError.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.errors))
	for i, e := range v.errors {
		parts[i] = e.String()
	}
	return goerrors.New(goerrors.ErrCodeInvalidInput, strings.Join(parts, "; ")).
		WithDetail("fields", v.Errors())
}

// Check records message for field unless ok holds.
func (v *Validator) Check(ok bool, field, format string, args ...any) *Validator {
	if !ok {
		v.AddError(field, fmt.Sprintf(format, args...))
	}
	return v
}

// Required fails blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Min fails values below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Check(value >= minVal, field, "must be at least %d (got: %d)", minVal, value)
}

// Name fails values that are not GraphQL names.
func (v *Validator) Name(field, value string) *Validator {
	return v.Check(graphQLName.MatchString(value), field, "%q is not a valid GraphQL name", value)
}

// VariableNames checks every key of vars with Name, in sorted order so the
// report is stable.
func (v *Validator) VariableNames(field string, vars map[string]any) *Validator {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v.Name(field+"."+k, k)
	}
	return v
}
