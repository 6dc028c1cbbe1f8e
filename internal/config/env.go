package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sufield/svcbind/internal/bindingstore"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvPrefix            = "SVCBIND_"
	EnvEnabled           = EnvPrefix + "ENABLED"
	EnvLayout            = EnvPrefix + "LAYOUT"
	EnvMySQLDriverFamily = EnvPrefix + "MYSQL_DRIVER_FAMILY"
	EnvKeystoreType      = EnvPrefix + "KEYSTORE_TYPE"
	EnvKeystoreDir       = EnvPrefix + "KEYSTORE_DIR"
	EnvOutputFormat      = EnvPrefix + "OUTPUT_FORMAT"
	EnvLogLevel          = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat         = EnvPrefix + "LOG_FORMAT"
	EnvInspectAddr       = EnvPrefix + "INSPECT_ADDR"
)

// TypeEnvVar returns the enable flag for a binding type, e.g.
// SVCBIND_POSTGRESQL_REPLICATED_ENABLED.
func TypeEnvVar(typ string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(typ, "-", "_")) + "_ENABLED"
}

// applyEnvOverrides overrides config values with environment variables if set.
// types lists the binding types whose enable flags are consulted.
// Returns error for invalid environment variable values to fail fast
func applyEnvOverrides(cfg *Config, getenv func(string) string, types []string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if root := bindingstore.RootFromEnv(getenv); root != "" {
		cfg.Bindings.Root = root
	}

	if enabled := getenv(EnvEnabled); enabled != "" {
		e, err := parseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvEnabled, enabled, err)
		}
		cfg.Enabled = &e
	}
	for _, typ := range types {
		name := TypeEnvVar(typ)
		if enabled := getenv(name); enabled != "" {
			e, err := parseBool(enabled)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", name, enabled, err)
			}
			cfg.setTypeEnabled(typ, e)
		}
	}

	if layout := getenv(EnvLayout); layout != "" {
		cfg.Bindings.Layout = layout
	}
	if family := getenv(EnvMySQLDriverFamily); family != "" {
		cfg.URLs.MySQLDriverFamily = family
	}
	if typ := getenv(EnvKeystoreType); typ != "" {
		cfg.Keystore.Type = typ
	}
	if dir := getenv(EnvKeystoreDir); dir != "" {
		cfg.Keystore.Dir = dir
	}
	if format := getenv(EnvOutputFormat); format != "" {
		cfg.Output.Format = format
	}
	if level := getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if format := getenv(EnvLogFormat); format != "" {
		cfg.Log.Format = format
	}
	if addr := getenv(EnvInspectAddr); addr != "" {
		cfg.Inspect.ListenAddr = addr
	}

	return nil
}

// parseBool parses boolean environment variables
// Accepts: "true", "1", "yes", "on" for true; "false", "0", "no", "off" for false
func parseBool(value string) (bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", value)
	}
}
