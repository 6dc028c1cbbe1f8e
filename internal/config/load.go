package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sufield/svcbind/internal/processor"
)

// Option adjusts how configuration is loaded.
type Option func(*loader)

type loader struct {
	getenv func(string) string
	types  []string
}

// WithGetenv replaces os.Getenv, for tests.
func WithGetenv(getenv func(string) string) Option {
	return func(l *loader) {
		l.getenv = getenv
	}
}

// WithTypes sets the binding types whose SVCBIND_<TYPE>_ENABLED flags are
// read. Defaults to every built-in processor type.
func WithTypes(types ...string) Option {
	return func(l *loader) {
		l.types = types
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{getenv: os.Getenv, types: processor.Types()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a YAML file, applies environment overrides and defaults, and
// validates the result. An empty path skips the file.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config
	if path != "" {
		// Clean the path to prevent directory traversal attacks
		data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - Config file path is trusted (from admin/user)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return finish(&cfg, newLoader(opts))
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv(opts ...Option) (*Config, error) {
	return finish(&Config{}, newLoader(opts))
}

func finish(cfg *Config, l *loader) (*Config, error) {
	if err := applyEnvOverrides(cfg, l.getenv, l.types); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
