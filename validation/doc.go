// Package validation checks configuration structs and request inputs,
// reporting failures as INVALID_INPUT AppErrors with per-field details.
//
// Struct tag validation uses go-playground/validator:
//
//	type ClientConfig struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects field errors before failing:
//
//	err := validation.New().
//	    Min("retries", retries, 0).
//	    VariableNames("variables", vars).
//	    Validate()
package validation
