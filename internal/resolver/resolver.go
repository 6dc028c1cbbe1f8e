// Package resolver runs processors over a binding catalogue and collects one
// property map.
package resolver

import (
	"context"
	"log/slog"
	"maps"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/processor"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Resolver runs enabled processors in registration order.
//
// A processor either contributes all of its properties or none: it writes
// into a copy of the map, and the copy replaces the map only on success.
// A failing processor is logged, its credential stores are removed, and the
// remaining processors still run.
type Resolver struct {
	processors []processor.Processor
	enabled    bool
	gate       func(typ string) bool
	driver     urlcompose.DriverFamily
	synth      *keystore.Synthesizer
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProcessors replaces the built-in table.
func WithProcessors(ps ...processor.Processor) Option {
	return func(r *Resolver) {
		r.processors = ps
	}
}

// WithEnabled sets the global switch. When false Resolve returns an empty map.
func WithEnabled(enabled bool) Option {
	return func(r *Resolver) {
		r.enabled = enabled
	}
}

// WithGate sets the per-type switch. gate receives the lower-case type.
func WithGate(gate func(typ string) bool) Option {
	return func(r *Resolver) {
		if gate != nil {
			r.gate = gate
		}
	}
}

// WithDriverFamily sets the R2DBC protocol for MySQL-compatible databases.
func WithDriverFamily(d urlcompose.DriverFamily) Option {
	return func(r *Resolver) {
		r.driver = d
	}
}

// WithSynthesizer sets the credential store writer.
func WithSynthesizer(s *keystore.Synthesizer) Option {
	return func(r *Resolver) {
		r.synth = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver with the built-in processor table, every type
// enabled.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		processors: processor.Table(),
		enabled:    true,
		gate:       func(string) bool { return true },
		driver:     urlcompose.DriverMySQL,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.synth == nil {
		r.synth = keystore.New(keystore.WithLogger(r.logger))
	}
	return r
}

// Resolve produces the properties for bindings and the credential stores
// written while doing so. The caller owns the returned stores.
//
// The only error is ctx's; in that case every store written so far has
// already been removed.
func (r *Resolver) Resolve(ctx context.Context, bindings *domain.Bindings) (domain.Properties, []keystore.Artifact, error) {
	props := domain.Properties{}
	if !r.enabled {
		r.logger.Debug("binding resolution disabled")
		return props, nil, nil
	}
	if bindings == nil {
		bindings = domain.NewBindings()
	}

	var artifacts []keystore.Artifact
	for _, p := range r.processors {
		if err := ctx.Err(); err != nil {
			removeAll(r.logger, artifacts)
			return nil, nil, err
		}

		if !r.gate(p.Key()) {
			r.logger.Debug("processor disabled", "type", p.Type)
			continue
		}

		env := processor.NewEnv(r.driver, r.synth, r.logger)
		scratch := maps.Clone(props)
		if err := p.Process(env, bindings, scratch); err != nil {
			r.logger.Warn("processor failed, skipping its contribution", "type", p.Type, "error", err)
			env.Discard()
			continue
		}

		props = scratch
		artifacts = append(artifacts, env.Artifacts()...)
	}

	r.logger.Info("resolved bindings",
		"bindings", bindings.Len(),
		"properties", len(props),
		"credential_stores", len(artifacts))
	return props, artifacts, nil
}

func removeAll(logger *slog.Logger, artifacts []keystore.Artifact) {
	for _, a := range artifacts {
		if err := a.Remove(); err != nil {
			logger.Warn("failed to remove credential store", "path", a.Path, "error", err)
		}
	}
}
