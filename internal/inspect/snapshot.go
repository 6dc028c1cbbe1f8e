// Package inspect serves a read-only view of one resolution pass.
package inspect

import (
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
)

// Snapshot is what the server exposes.
// MUST NOT carry secrets: binding values and store passwords stay out, and
// properties are redacted when the snapshot is built.
type Snapshot struct {
	Bindings   []BindingView     `json:"bindings"`
	Properties domain.Properties `json:"properties"`
	Stores     []StoreView       `json:"stores"`
}

// BindingView lists a binding's metadata and field names, never values.
type BindingView struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Provider string   `json:"provider,omitempty"`
	Path     string   `json:"path"`
	Keys     []string `json:"keys"`
}

// StoreView describes a generated credential store without its password.
type StoreView struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Alias    string `json:"alias"`
	KeyStore bool   `json:"keyStore"`
}

// NewSnapshot builds a Snapshot. props is redacted here.
func NewSnapshot(bindings *domain.Bindings, props domain.Properties, stores []keystore.Artifact) Snapshot {
	snap := Snapshot{
		Bindings:   []BindingView{},
		Properties: props.Redacted(),
		Stores:     []StoreView{},
	}
	if bindings != nil {
		for _, b := range bindings.All() {
			snap.Bindings = append(snap.Bindings, BindingView{
				Name:     b.Name(),
				Type:     b.Type(),
				Provider: b.Provider(),
				Path:     b.Path(),
				Keys:     b.Keys(),
			})
		}
	}
	for _, a := range stores {
		snap.Stores = append(snap.Stores, StoreView{
			Path:     a.Path,
			Type:     string(a.Type),
			Alias:    a.Alias,
			KeyStore: a.KeyStore,
		})
	}
	return snap
}

// Binding returns the view for name.
func (s Snapshot) Binding(name string) (BindingView, bool) {
	for _, b := range s.Bindings {
		if b.Name == name {
			return b, true
		}
	}
	return BindingView{}, false
}
