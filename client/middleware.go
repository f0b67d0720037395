package client

import (
	"context"
	"math"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/observability"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/resilience"
	"github.com/kbukum/gqlkit/result"
	"github.com/kbukum/gqlkit/validation"
)

// WithRetryBudget retries opening the stream with cfg's backoff, allowing
// d.Retries()+1 attempts per request. cfg.MaxAttempts is ignored.
func WithRetryBudget[D any](cfg resilience.RetryConfig) Middleware[D] {
	return func(inner Transport[D]) Transport[D] {
		return &retryStream[D]{inner: inner, cfg: cfg}
	}
}

type retryStream[D any] struct {
	inner Transport[D]
	cfg   resilience.RetryConfig
}

func (s *retryStream[D]) Name() string                         { return s.inner.Name() }
func (s *retryStream[D]) IsAvailable(ctx context.Context) bool { return s.inner.IsAvailable(ctx) }

func (s *retryStream[D]) Execute(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
	cfg := s.cfg
	cfg.MaxAttempts = attempts(d.Retries())
	return resilience.Retry(ctx, cfg, func(ctx context.Context) (provider.Iterator[result.Raw[D]], error) {
		return s.inner.Execute(ctx, d)
	})
}

// attempts is the retry budget plus the first try, saturating at math.MaxInt.
func attempts(retries int) int {
	if retries == math.MaxInt {
		return retries
	}
	return max(retries, 0) + 1
}

// WithVariablesSchema rejects requests whose variables do not satisfy the
// JSON schema. The schema is compiled once; an invalid schema is an error.
func WithVariablesSchema[D any](schema string) (Middleware[D], error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, goerrors.InvalidInput("variables_schema", err.Error()).WithCause(err)
	}
	return func(inner Transport[D]) Transport[D] {
		return &schemaStream[D]{inner: inner, schema: compiled}
	}, nil
}

type schemaStream[D any] struct {
	inner  Transport[D]
	schema *gojsonschema.Schema
}

func (s *schemaStream[D]) Name() string                         { return s.inner.Name() }
func (s *schemaStream[D]) IsAvailable(ctx context.Context) bool { return s.inner.IsAvailable(ctx) }

func (s *schemaStream[D]) Execute(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
	if err := validateVariables(s.schema, d.Variables()); err != nil {
		return nil, err
	}
	return s.inner.Execute(ctx, d)
}

func validateVariables(schema *gojsonschema.Schema, vars map[string]any) error {
	if vars == nil {
		vars = map[string]any{}
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(vars))
	if err != nil {
		return goerrors.InvalidInput("variables", "cannot be checked against schema").WithCause(err)
	}
	if res.Valid() {
		return nil
	}
	v := validation.New()
	for _, e := range res.Errors() {
		v.AddError("variables."+e.Field(), e.Description())
	}
	return v.Validate()
}

// WithCircuitBreaker stops dispatching after cfg.MaxFailures consecutive
// failures. The breaker is shared by every request through the middleware.
func WithCircuitBreaker[D any](cfg resilience.CircuitBreakerConfig) Middleware[D] {
	return provider.ResilienceMiddleware[*request.Descriptor, result.Raw[D]](provider.ResilienceConfig{
		CircuitBreaker: &cfg,
	})
}

// WithTracing opens a span per dispatch, named "{serviceName}.{client}" and
// tagged with the descriptor's ID, retry budget and description.
func WithTracing[D any](serviceName string) Middleware[D] {
	traced := provider.WithTracing[*request.Descriptor, result.Raw[D]](serviceName)
	return func(inner Transport[D]) Transport[D] {
		return traced(annotated[D]{inner})
	}
}

type annotated[D any] struct{ Transport[D] }

func (a annotated[D]) Execute(ctx context.Context, d *request.Descriptor) (provider.Iterator[result.Raw[D]], error) {
	attrs := []attribute.KeyValue{
		observability.AttrRequestID.String(d.ID()),
		observability.AttrRetries.Int(d.Retries()),
	}
	if desc := d.Description(); desc != "" {
		attrs = append(attrs, observability.AttrDescription.String(desc))
	}
	observability.Annotate(ctx, attrs...)
	return a.Transport.Execute(ctx, d)
}
