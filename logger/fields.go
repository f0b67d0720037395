package logger

import "time"

// Field keys shared by every gqlkit log entry.
const (
	FieldComponent   = "component"
	FieldClient      = "client"
	FieldRequestID   = "request_id"
	FieldDescription = "description"
	FieldStage       = "stage"
	FieldAttempt     = "attempt"
	FieldMiddleware  = "middleware"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are dropped.
//
//	log.Debug("dispatched", logger.Fields("client", "countries", "attempt", 2))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 1; i < len(kvs); i += 2 {
		if key, ok := kvs[i-1].(string); ok {
			m[key] = kvs[i]
		}
	}
	return m
}

// MergeWithError sets FieldError on fields, allocating it when nil.
func MergeWithError(fields map[string]any, err error) map[string]any {
	return merge(fields, FieldError, err.Error())
}

// MergeWithDuration sets FieldDuration in milliseconds on fields.
func MergeWithDuration(fields map[string]any, d time.Duration) map[string]any {
	return merge(fields, FieldDuration, d.Milliseconds())
}

func merge(fields map[string]any, key string, value any) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields[key] = value
	return fields
}
