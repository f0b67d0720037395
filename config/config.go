package config

import (
	"fmt"

	"github.com/kbukum/gqlkit/logger"
	"github.com/kbukum/gqlkit/observability"
	"github.com/kbukum/gqlkit/validation"
)

// Deployment environments accepted in BaseConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// BaseConfig names the application that owns the client.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	// Debug is forced on in development.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults selects development when no environment is set.
func (b *BaseConfig) ApplyDefaults() {
	if b.Environment == "" {
		b.Environment = EnvDevelopment
	}
	b.Debug = b.Debug || b.Environment == EnvDevelopment
}

// Config is the complete gqlkit configuration. Applications embed it or load
// it directly:
//
//	cfg, err := config.Load("catalog")
type Config struct {
	Base          BaseConfig           `yaml:"base" mapstructure:"base"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Client        Client               `yaml:"client" mapstructure:"client"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section with defaults. The client and service
// names fall back to the base name.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Logging.ApplyDefaults()
	if c.Client.Name == "" {
		c.Client.Name = c.Base.Name
	}
	c.Client.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Base.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Base.Environment
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Base.Version
	}
	c.Observability.ApplyDefaults()
}

// Validate checks struct tags on every section, then the logging settings.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Load reads configuration for the named application, applies defaults and validates it.
func Load(name string, opts ...Option) (*Config, error) {
	var cfg Config
	if err := LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
