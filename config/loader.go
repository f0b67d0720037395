package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix marks environment variables that override configuration keys:
// GQLKIT_CLIENT_NAME sets client.name.
const EnvPrefix = "GQLKIT_"

// searchDirs are tried in order for both config and .env files.
var searchDirs = []string{".", "./config", ".."}

// Files is the file access the loader needs.
type Files interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFiles struct{}

func (osFiles) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFiles) LoadEnv(path string) error { return godotenv.Load(path) }

type options struct {
	files      Files
	configFile string
	envFile    string
}

// Option customizes LoadConfig.
type Option func(*options)

// WithFiles replaces file access, mainly for tests.
func WithFiles(f Files) Option { return func(o *options) { o.files = f } }

// WithConfigFile skips the search and reads path.
func WithConfigFile(path string) Option { return func(o *options) { o.configFile = path } }

// WithEnvFile skips the search and loads path.
func WithEnvFile(path string) Option { return func(o *options) { o.envFile = path } }

// locate returns the config and .env files to read. Explicit paths win;
// otherwise the first existing candidate is used, or "" when none exists.
func locate(name string, o options) (configFile, envFile string) {
	configFile, envFile = o.configFile, o.envFile
	if configFile == "" {
		configFile = firstExisting(o.files, configCandidates(name))
	}
	if envFile == "" {
		envFile = firstExisting(o.files, envCandidates(name))
	}
	return configFile, envFile
}

func firstExisting(f Files, paths []string) string {
	i := slices.IndexFunc(paths, f.Exists)
	if i < 0 {
		return ""
	}
	return paths[i]
}

func configCandidates(name string) []string {
	var paths []string
	for _, dir := range searchDirs {
		paths = append(paths, filepath.Join(dir, name+".yml"), filepath.Join(dir, name+".yaml"))
	}
	return append(paths, filepath.Join("config", "config.yml"), "config.yml")
}

func envCandidates(name string) []string {
	var paths []string
	for _, file := range []string{".env." + name, ".env"} {
		for _, dir := range searchDirs {
			paths = append(paths, filepath.Join(dir, file))
		}
	}
	return paths
}

// LoadConfig decodes configuration for the named application into cfg.
// Sources, later ones winning: the YAML file, then GQLKIT_ variables, which
// may come from the .env file. Missing files are skipped; unreadable ones fail.
func LoadConfig(name string, cfg any, opts ...Option) error {
	o := options{files: osFiles{}}
	for _, opt := range opts {
		opt(&o)
	}
	configFile, envFile := locate(name, o)

	v := viper.New()
	if configFile != "" && o.files.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	if envFile != "" && o.files.Exists(envFile) {
		if err := o.files.LoadEnv(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}
	overrideFromEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decoding config for %s: %w", name, err)
	}
	return nil
}

// overrideFromEnv sets every GQLKIT_ variable under each key it could name.
func overrideFromEnv(v *viper.Viper, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, EnvPrefix)
		if !ok || rest == "" {
			continue
		}
		for _, key := range envKeys(rest) {
			v.Set(key, value)
		}
	}
}

// envKeys lists the config keys an env var name could mean. An underscore
// either separates sections or belongs to a key, so CLIENT_RETRY_MAX_BACKOFF
// yields client_retry_max_backoff, client.retry.max.backoff,
// client.retry_max_backoff and client.retry.max_backoff among others.
func envKeys(name string) []string {
	lower := strings.ToLower(name)
	keys := []string{lower}
	add := func(k string) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	add(strings.ReplaceAll(lower, "_", "."))
	parts := strings.Split(lower, "_")
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return keys
}
