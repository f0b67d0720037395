package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	goerrors "github.com/kbukum/gqlkit/errors"
)

// structs reports configuration keys (mapstructure, then json, then
// snake_case) instead of Go field names.
var structs = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(keyName)
	return v
})

func keyName(f reflect.StructField) string {
	for _, tag := range []string{"mapstructure", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return toSnakeCase(f.Name)
}

// Validate checks s against its `validate` struct tags. Every violation is
// collected into one INVALID_INPUT error keyed by configuration path.
func Validate(s any) error {
	err := structs().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return goerrors.New(goerrors.ErrCodeInvalidInput, "validation failed").WithCause(err)
	}

	v := New()
	for _, e := range fieldErrs {
		v.AddError(keyPath(e), describe(e))
	}
	return v.Validate()
}

// keyPath strips the root type: "Config.client.name" becomes "client.name".
func keyPath(e validator.FieldError) string {
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		return path
	}
	return toSnakeCase(e.Field())
}

var tagMessages = map[string]string{
	"required":    "is required",
	"required_if": "is required when ",
	"min":         "must be at least ",
	"max":         "must be at most ",
	"gte":         "must be >= ",
	"lte":         "must be <= ",
	"oneof":       "must be one of: ",
	"url":         "must be a valid URL",
}

func describe(e validator.FieldError) string {
	if e.Tag() == "gtefield" {
		return "must be >= " + toSnakeCase(e.Param())
	}
	msg, ok := tagMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		msg += e.Param()
	}
	return msg
}

// toSnakeCase turns InitialBackoff into initial_backoff.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
