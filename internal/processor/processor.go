package processor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/mapper"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Processor contributes properties for the bindings of one type.
type Processor struct {
	// Type is the binding type handled, matched case-insensitively.
	Type string

	// Provider, when set, restricts matching to bindings with that provider.
	Provider string

	// Rules returns the mapping table for one binding. Tables that do not
	// depend on the binding use Static.
	Rules func(env *Env, b *domain.Binding) []mapper.Rule

	// Contribute runs after Rules for each binding.
	Contribute func(env *Env, b *domain.Binding, props domain.Properties) error

	// ContributeAll replaces the per-binding steps and receives every
	// matching binding at once, in discovery order.
	ContributeAll func(env *Env, bindings []*domain.Binding, props domain.Properties) error
}

// Static wraps a fixed table.
func Static(rules ...mapper.Rule) func(*Env, *domain.Binding) []mapper.Rule {
	return func(*Env, *domain.Binding) []mapper.Rule {
		return rules
	}
}

// Key returns the lower-case type used for enable flags.
func (p Processor) Key() string {
	return strings.ToLower(p.Type)
}

// Match returns the bindings this processor handles, in discovery order.
func (p Processor) Match(bindings *domain.Bindings) []*domain.Binding {
	typ := p.Type
	if p.Provider == "" {
		return bindings.Filter(&typ, nil)
	}
	provider := p.Provider
	return bindings.Filter(&typ, &provider)
}

// Process applies the processor to every matching binding. It stops at the
// first failing binding.
func (p Processor) Process(env *Env, bindings *domain.Bindings, props domain.Properties) error {
	matched := p.Match(bindings)
	if len(matched) == 0 {
		return nil
	}

	if p.ContributeAll != nil {
		return p.ContributeAll(env, matched, props)
	}

	for _, b := range matched {
		if p.Rules != nil {
			mapper.Apply(mapper.New(b.Secret(), props), p.Rules(env, b))
		}
		if p.Contribute != nil {
			if err := p.Contribute(env, b, props); err != nil {
				return fmt.Errorf("binding %q: %w", b.Name(), err)
			}
		}
		env.Logger.Debug("processed binding", "type", p.Type, "binding", b.Name())
	}
	return nil
}

// Env carries the collaborators a processor may use. An Env belongs to a
// single processor run.
type Env struct {
	Driver      urlcompose.DriverFamily
	Synthesizer *keystore.Synthesizer
	Logger      *slog.Logger

	artifacts []keystore.Artifact
}

// NewEnv returns an Env, filling unset collaborators with defaults.
func NewEnv(driver urlcompose.DriverFamily, synth *keystore.Synthesizer, logger *slog.Logger) *Env {
	if synth == nil {
		synth = keystore.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Env{Driver: driver, Synthesizer: synth, Logger: logger}
}

// Artifacts returns the stores written during this run.
func (e *Env) Artifacts() []keystore.Artifact {
	return append([]keystore.Artifact(nil), e.artifacts...)
}

// Discard removes every store written during this run.
func (e *Env) Discard() {
	for _, a := range e.artifacts {
		if err := a.Remove(); err != nil {
			e.Logger.Warn("failed to remove credential store", "path", a.Path, "error", err)
		}
	}
	e.artifacts = nil
}

func (e *Env) keep(a keystore.Artifact) {
	e.artifacts = append(e.artifacts, a)
}
