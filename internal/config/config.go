// Package config loads svcbind configuration from a YAML file and
// environment variables.
//
// Precedence, lowest first: defaults, file, environment.
package config

import "strings"

// Config is the complete svcbind configuration.
type Config struct {
	// Version is the config file format version (optional, currently always 1).
	Version int `yaml:"version,omitempty"`

	// Enabled is the global switch. nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`

	Bindings   BindingsSection             `yaml:"bindings"`
	Processors map[string]ProcessorSection `yaml:"processors,omitempty"`
	URLs       URLsSection                 `yaml:"urls"`
	Keystore   KeystoreSection             `yaml:"keystore"`
	Output     OutputSection               `yaml:"output"`
	Log        LogSection                  `yaml:"log"`
	Inspect    InspectSection              `yaml:"inspect"`
}

// BindingsSection locates the binding root.
type BindingsSection struct {
	// Root is the binding root directory. When empty, SERVICE_BINDING_ROOT
	// and then CNB_BINDINGS are consulted.
	Root string `yaml:"root"`

	// Layout is "flat" (default) or "legacy".
	Layout string `yaml:"layout"`
}

// ProcessorSection toggles one binding type.
type ProcessorSection struct {
	// Enabled is nil when unset, which means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// URLsSection tunes URL composition.
type URLsSection struct {
	// MySQLDriverFamily is "mysql" (default) or "mariadb" and selects the
	// R2DBC protocol for MySQL bindings.
	MySQLDriverFamily string `yaml:"mysql_driver_family"`
}

// KeystoreSection configures credential store synthesis.
type KeystoreSection struct {
	// Type is "PKCS12" (default) or "JKS".
	Type string `yaml:"type"`

	// Dir receives generated stores. Defaults to the system temp directory.
	Dir string `yaml:"dir"`

	// ResourceRoot resolves "classpath:" certificate references.
	ResourceRoot string `yaml:"resource_root"`
}

// OutputSection selects the renderer.
type OutputSection struct {
	// Format is one of properties, json, yaml, env, java-opts.
	Format string `yaml:"format"`

	// Path is the output file. Empty or "-" writes to stdout.
	Path string `yaml:"path"`
}

// LogSection configures the process logger.
type LogSection struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// InspectSection configures the read-only inspection server.
type InspectSection struct {
	ListenAddr string `yaml:"listen_addr"`
}

// IsEnabled reports the global switch.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TypeEnabled reports whether processors for typ should run. Unlisted
// types are enabled.
func (c *Config) TypeEnabled(typ string) bool {
	section, ok := c.Processors[strings.ToLower(typ)]
	if !ok || section.Enabled == nil {
		return true
	}
	return *section.Enabled
}

func (c *Config) setTypeEnabled(typ string, enabled bool) {
	if c.Processors == nil {
		c.Processors = make(map[string]ProcessorSection)
	}
	c.Processors[strings.ToLower(typ)] = ProcessorSection{Enabled: &enabled}
}
