package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/sufield/svcbind"
	"github.com/sufield/svcbind/internal/app"
	"github.com/sufield/svcbind/internal/config"
)

// configFlags are shared by every command that runs a resolution pass.
// Flags override both the file and the environment.
type configFlags struct {
	path      string
	root      string
	layout    string
	storeType string
	storeDir  string
	logLevel  string
}

func (c *configFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.path, "config", "", "Path to svcbind.yaml (default: $SVCBIND_CONFIG)")
	fs.StringVar(&c.root, "root", "", "Binding root (default: $SERVICE_BINDING_ROOT, then $CNB_BINDINGS)")
	fs.StringVar(&c.layout, "layout", "", "Binding layout: flat or legacy")
	fs.StringVar(&c.storeType, "keystore-type", "", "Credential store type: PKCS12 or JKS")
	fs.StringVar(&c.storeDir, "keystore-dir", "", "Directory for generated credential stores")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// load reads the configuration and applies flag overrides.
func (c *configFlags) load(getenv func(string) string) (*config.Config, error) {
	path := c.path
	if path == "" {
		path = getenv(svcbind.EnvConfig)
	}

	cfg, err := config.Load(path, config.WithGetenv(getenv))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.root != "" {
		cfg.Bindings.Root = c.root
	}
	if c.layout != "" {
		cfg.Bindings.Layout = c.layout
	}
	if c.storeType != "" {
		cfg.Keystore.Type = c.storeType
	}
	if c.storeDir != "" {
		cfg.Keystore.Dir = c.storeDir
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bootstrap loads the configuration and wires the application.
func (c *configFlags) bootstrap(getenv func(string) string) (*app.Application, error) {
	cfg, err := c.load(getenv)
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Log, stderr)
	slog.SetDefault(logger)
	return app.Bootstrap(cfg, logger)
}
