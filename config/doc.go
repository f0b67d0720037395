// Package config loads gqlkit configuration with Viper.
//
// Values come from a YAML file, an optional .env file loaded with godotenv,
// and GQLKIT_ prefixed environment variables, in increasing precedence:
//
//	cfg, err := config.Load("catalog", config.WithConfigFile("./catalog.yml"))
//
//	# catalog.yml
//	base:
//	  name: catalog
//	client:
//	  circuit_breaker:
//	    enabled: true
//
//	GQLKIT_CLIENT_RETRY_MAX_BACKOFF=2s overrides client.retry.max_backoff.
package config
