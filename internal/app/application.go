package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sufield/svcbind/internal/bindingstore"
	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/resolver"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Application wires every component for one configuration.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Layout   bindingstore.Layout
	Resolver *resolver.Resolver
}

// Result is the outcome of one pass.
type Result struct {
	Bindings   *domain.Bindings
	Properties domain.Properties
	Stores     []keystore.Artifact
}

// Cleanup removes the credential stores.
func (r *Result) Cleanup() error {
	var errs []error
	for _, a := range r.Stores {
		if err := a.Remove(); err != nil {
			errs = append(errs, err)
		}
	}
	r.Stores = nil
	return errors.Join(errs...)
}

// Bootstrap validates cfg and builds the components. logger may be nil.
func Bootstrap(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Step 1: Parse enumerated settings
	layout, err := bindingstore.ParseLayout(cfg.Bindings.Layout)
	if err != nil {
		return nil, err
	}
	driver, err := urlcompose.ParseDriverFamily(cfg.URLs.MySQLDriverFamily)
	if err != nil {
		return nil, err
	}
	storeType, err := keystore.ParseStoreType(cfg.Keystore.Type)
	if err != nil {
		return nil, err
	}

	// Step 2: Credential store writer
	synth := keystore.New(
		keystore.WithDir(cfg.Keystore.Dir),
		keystore.WithStoreType(storeType),
		keystore.WithResourceRoot(cfg.Keystore.ResourceRoot),
		keystore.WithLogger(logger),
	)

	// Step 3: Resolver with the configured switches
	res := resolver.New(
		resolver.WithEnabled(cfg.IsEnabled()),
		resolver.WithGate(cfg.TypeEnabled),
		resolver.WithDriverFamily(driver),
		resolver.WithSynthesizer(synth),
		resolver.WithLogger(logger),
	)

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Layout:   layout,
		Resolver: res,
	}, nil
}

// LoadBindings reads the configured binding root.
func (a *Application) LoadBindings() (*domain.Bindings, error) {
	bindings, err := bindingstore.Load(a.Config.Bindings.Root,
		bindingstore.WithLayout(a.Layout),
		bindingstore.WithLogger(a.Logger))
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("loaded bindings", "root", a.Config.Bindings.Root, "layout", string(a.Layout), "count", bindings.Len())
	return bindings, nil
}

// Run loads the catalogue and resolves it.
func (a *Application) Run(ctx context.Context) (*Result, error) {
	bindings, err := a.LoadBindings()
	if err != nil {
		return nil, err
	}
	props, stores, err := a.Resolver.Resolve(ctx, bindings)
	if err != nil {
		return nil, err
	}
	return &Result{Bindings: bindings, Properties: props, Stores: stores}, nil
}
