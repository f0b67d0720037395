package resilience

import "time"

// RetrySettings is the configuration-file form of RetryConfig. The attempt
// count is not configured here; it comes from each request's retry budget.
type RetrySettings struct {
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gtefield=InitialBackoff"`
	BackoffFactor  float64       `yaml:"backoff_factor" mapstructure:"backoff_factor" validate:"gte=0"`
	Jitter         float64       `yaml:"jitter" mapstructure:"jitter" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset fields from DefaultRetryConfig.
func (s *RetrySettings) ApplyDefaults() {
	def := DefaultRetryConfig().Backoff
	if s.InitialBackoff == 0 {
		s.InitialBackoff = def.Initial
	}
	if s.MaxBackoff == 0 {
		s.MaxBackoff = def.Max
	}
	if s.BackoffFactor == 0 {
		s.BackoffFactor = def.Factor
	}
	if s.Jitter == 0 {
		s.Jitter = def.Jitter
	}
}

// RetryConfig converts the settings into a RetryConfig with DefaultRetryIf.
func (s RetrySettings) RetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 1,
		Backoff: Backoff{
			Initial: s.InitialBackoff,
			Max:     s.MaxBackoff,
			Factor:  s.BackoffFactor,
			Jitter:  s.Jitter,
		},
		RetryIf: DefaultRetryIf,
	}
}

// CircuitBreakerSettings is the configuration-file form of CircuitBreakerConfig.
type CircuitBreakerSettings struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxFailures      int           `yaml:"max_failures" mapstructure:"max_failures" validate:"gte=0"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	HalfOpenMaxCalls int           `yaml:"half_open_max_calls" mapstructure:"half_open_max_calls" validate:"gte=0"`
}

// ApplyDefaults fills unset fields from DefaultCircuitBreakerConfig.
func (s *CircuitBreakerSettings) ApplyDefaults() {
	def := DefaultCircuitBreakerConfig("")
	if s.MaxFailures == 0 {
		s.MaxFailures = def.MaxFailures
	}
	if s.Timeout == 0 {
		s.Timeout = def.Timeout
	}
	if s.HalfOpenMaxCalls == 0 {
		s.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
}

// CircuitBreakerConfig converts the settings into a named CircuitBreakerConfig.
func (s CircuitBreakerSettings) CircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      s.MaxFailures,
		Timeout:          s.Timeout,
		HalfOpenMaxCalls: s.HalfOpenMaxCalls,
	}
}
