// Package svcbind resolves mounted service bindings into JVM application
// properties and, where TLS material is bound, into PKCS12 or JKS stores.
//
// Quick Start:
//
//	res, err := svcbind.Resolve(ctx, "svcbind.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer res.Close()
//
//	for _, k := range res.Properties.Keys() {
//	    fmt.Printf("%s=%s\n", k, res.Properties[k])
//	}
//
// Or, with configuration taken from SVCBIND_CONFIG and the environment:
//
//	res, err := svcbind.ResolveFromEnv(ctx)
package svcbind

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sufield/svcbind/internal/app"
	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/output"
)

// EnvConfig names the configuration file used by ResolveFromEnv.
const EnvConfig = "SVCBIND_CONFIG"

// Properties is a flat property map.
type Properties = domain.Properties

// Store is a generated credential store.
type Store = keystore.Artifact

// Result holds the outcome of one resolution pass.
type Result struct {
	// Bindings lists the discovered binding names in discovery order.
	Bindings []string

	// Properties is the merged property map.
	Properties Properties

	// Stores lists the credential stores written. Close removes them.
	Stores []Store

	inner *app.Result
}

// Close removes the credential stores.
func (r *Result) Close() error {
	if r == nil || r.inner == nil {
		return nil
	}
	err := r.inner.Cleanup()
	r.Stores = nil
	return err
}

// WriteTo renders the properties in format ("properties", "json", "yaml",
// "env" or "java-opts").
func (r *Result) WriteTo(w io.Writer, format string) error {
	renderer, err := output.Lookup(format)
	if err != nil {
		return err
	}
	return renderer.Render(w, r.Properties)
}

// Option adjusts a resolution.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes diagnostics to logger. By default they are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Resolve loads configPath (empty for none), applies environment overrides
// and resolves the configured binding root.
func Resolve(ctx context.Context, configPath string, opts ...Option) (*Result, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return resolve(ctx, cfg, opts)
}

// ResolveFromEnv is Resolve with the path taken from SVCBIND_CONFIG. When
// the variable is unset only the environment is consulted.
func ResolveFromEnv(ctx context.Context, opts ...Option) (*Result, error) {
	return Resolve(ctx, os.Getenv(EnvConfig), opts...)
}

func resolve(ctx context.Context, cfg *config.Config, opts []Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	application, err := app.Bootstrap(cfg, o.logger)
	if err != nil {
		return nil, err
	}
	inner, err := application.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Bindings:   inner.Bindings.Names(),
		Properties: inner.Properties,
		Stores:     inner.Stores,
		inner:      inner,
	}, nil
}
