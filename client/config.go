package client

import (
	"fmt"
	"time"

	"github.com/kbukum/gqlkit/config"
	"github.com/kbukum/gqlkit/logger"
	"github.com/kbukum/gqlkit/observability"
	"github.com/kbukum/gqlkit/provider"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
	"github.com/kbukum/gqlkit/validation"
)

const meterName = "github.com/kbukum/gqlkit/client"

// NewFromConfig builds a client with the standard middleware stack, outermost
// first: tracing, metrics, logging (when enabled), schema (when set), circuit
// breaker (when enabled) and retry.
func NewFromConfig[D any](cfg config.Client, transport Transport[D], log *logger.Logger) (*Client[D], error) {
	cfg.ApplyDefaults()
	if err := validation.Validate(cfg); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}
	log = logger.OrNop(log).WithComponent("client").WithFields(logger.Fields(logger.FieldClient, cfg.Name))

	metrics, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("client metrics: %w", err)
	}

	reg := NewRegistry[D]()
	add := func(name string, mw Middleware[D]) {
		// Names are constants and middlewares non-nil.
		_ = reg.Register(name, mw)
	}

	add(MiddlewareTracing, WithTracing[D](cfg.Name))
	add(MiddlewareMetrics, provider.WithMetrics[*request.Descriptor, result.Raw[D]](metrics))
	if cfg.Logging {
		add(MiddlewareLogging, provider.WithLogging[*request.Descriptor, result.Raw[D]](log))
	}
	if cfg.VariablesSchema != "" {
		mw, err := WithVariablesSchema[D](cfg.VariablesSchema)
		if err != nil {
			return nil, fmt.Errorf("client config: %w", err)
		}
		add(MiddlewareSchema, mw)
	}
	if cfg.CircuitBreaker.Enabled {
		add(MiddlewareCircuitBreaker, WithCircuitBreaker[D](cfg.CircuitBreaker.CircuitBreakerConfig(cfg.Name)))
	}

	retryCfg := cfg.Retry.RetryConfig()
	retryCfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("retrying dispatch", logger.MergeWithError(logger.MergeWithDuration(
			logger.Fields(logger.FieldAttempt, attempt), backoff), err))
	}
	add(MiddlewareRetry, WithRetryBudget[D](retryCfg))

	return New(cfg.Name, transport, reg), nil
}
