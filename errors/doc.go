// Package errors provides the structured error type used across gqlkit.
// Every failure carried on a handler stream or returned by a builder accessor
// is an *AppError with a machine-readable code and optional cause.
package errors
