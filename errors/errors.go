package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"runtime/debug"
)

// AppError is the error type every gqlkit stage reports. Retryable follows the
// code unless a constructor says otherwise.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New creates an AppError whose Retryable flag comes from IsRetryableCode.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// MissingQuery reports a descriptor read without a query. state is the
// descriptor's serialized form.
func MissingQuery(state string) *AppError {
	return Newf(ErrCodeMissingQuery, "query cannot be nil for %s", state).
		WithDetail("descriptor", state)
}

// MissingClient reports a handler used without a client.
func MissingClient() *AppError {
	return New(ErrCodeMissingClient, "graphql client cannot be nil")
}

// InvalidInput reports a bad value. field may be empty.
func InvalidInput(field, reason string) *AppError {
	e := Newf(ErrCodeInvalidInput, "invalid input: %s", reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// UnwrapFailed is the marker carried by a Try with no value.
func UnwrapFailed(message string) *AppError {
	return New(ErrCodeUnwrapFailed, message)
}

// GeneratorFailed wraps a failure of the request generator.
func GeneratorFailed(cause error) *AppError {
	return New(ErrCodeGeneratorFailed, "request generator failed").WithCause(cause)
}

// ProcessorFailed wraps a failure of the result processor.
func ProcessorFailed(cause error) *AppError {
	return New(ErrCodeProcessorFailed, "result processor failed").WithCause(cause)
}

// DispatchFailed wraps an error the named client returned while executing.
func DispatchFailed(client string, cause error) *AppError {
	return Newf(ErrCodeDispatchFailed, "client %s failed to execute request", client).
		WithDetail("client", client).
		WithCause(cause)
}

// ServiceUnavailable reports a backend that cannot take requests right now.
func ServiceUnavailable(service string) *AppError {
	return Newf(ErrCodeServiceUnavailable, "%s is temporarily unavailable", service).
		WithDetail("service", service)
}

// Timeout reports an operation that ran past its deadline.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "the request took too long").WithDetail("operation", operation)
}

// Canceled reports an operation the caller canceled.
func Canceled(operation string) *AppError {
	return New(ErrCodeCanceled, "the request was canceled").WithDetail("operation", operation)
}

// Internal wraps an unexpected error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "an unexpected error occurred").WithCause(cause)
}

// Recovered turns a recovered panic value into an INTERNAL_ERROR with the
// stack in Details["stack"].
func Recovered(value any) *AppError {
	cause, ok := value.(error)
	if !ok {
		cause = fmt.Errorf("panic: %v", value)
	}
	return Internal(cause).WithDetail("stack", string(debug.Stack()))
}

// IsAppError reports whether err's chain contains an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether an AppError carrying code is in err's chain,
// following AppError causes.
func HasCode(err error, code ErrorCode) bool {
	for {
		appErr, ok := AsAppError(err)
		if !ok {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
}
