package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// Building a request.
	ErrCodeMissingQuery  ErrorCode = "MISSING_QUERY"
	ErrCodeMissingClient ErrorCode = "MISSING_CLIENT"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"

	// Running one of the request stages.
	ErrCodeGeneratorFailed ErrorCode = "GENERATOR_FAILED"
	ErrCodeProcessorFailed ErrorCode = "PROCESSOR_FAILED"
	ErrCodeDispatchFailed  ErrorCode = "DISPATCH_FAILED"
	// ErrCodeUnwrapFailed marks an explicitly absent value, such as a missing error list.
	ErrCodeUnwrapFailed ErrorCode = "UNWRAP_FAILED"

	// Backend availability.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"

	ErrCodeCanceled ErrorCode = "CANCELED"
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// IsRetryableCode reports whether errors with code are worth retrying.
func IsRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeServiceUnavailable, ErrCodeTimeout, ErrCodeDispatchFailed:
		return true
	}
	return false
}
