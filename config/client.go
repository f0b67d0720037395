package config

import "github.com/kbukum/gqlkit/resilience"

// Client configures the middleware stack built around a GraphQL transport.
type Client struct {
	// Name labels the client in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// Logging enables the dispatch logging middleware.
	Logging bool `yaml:"logging" mapstructure:"logging"`
	// VariablesSchema is an inline JSON schema checked against request variables.
	VariablesSchema string `yaml:"variables_schema" mapstructure:"variables_schema"`
	// Retry tunes the backoff used to spend each request's retry budget.
	Retry resilience.RetrySettings `yaml:"retry" mapstructure:"retry"`
	// CircuitBreaker guards the transport when enabled.
	CircuitBreaker resilience.CircuitBreakerSettings `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// ApplyDefaults fills unset resilience settings.
func (c *Client) ApplyDefaults() {
	c.Retry.ApplyDefaults()
	c.CircuitBreaker.ApplyDefaults()
}
