package domain

import (
	"slices"
	"strings"
)

// Bindings is an ordered catalogue of bindings. It is immutable after
// construction.
type Bindings struct {
	items []*Binding
}

// NewBindings creates a catalogue from an explicit list. Order is kept.
func NewBindings(items ...*Binding) *Bindings {
	return &Bindings{items: slices.Clone(items)}
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// All returns the bindings in discovery order.
func (b *Bindings) All() []*Binding {
	if b == nil {
		return nil
	}
	return slices.Clone(b.items)
}

// Names returns binding names in discovery order.
func (b *Bindings) Names() []string {
	names := make([]string, 0, b.Len())
	for _, item := range b.All() {
		names = append(names, item.Name())
	}
	return names
}

// Lookup returns the first binding with the given name.
func (b *Bindings) Lookup(name string) (*Binding, bool) {
	for _, item := range b.All() {
		if item.Name() == name {
			return item, true
		}
	}
	return nil, false
}

// Filter returns the bindings matching typ and provider, compared
// case-insensitively. A nil argument does not filter on that field. A
// provider filter only matches bindings that have a non-empty provider.
func (b *Bindings) Filter(typ, provider *string) []*Binding {
	var out []*Binding
	for _, item := range b.All() {
		if typ != nil && !strings.EqualFold(item.Type(), *typ) {
			continue
		}
		if provider != nil && (item.Provider() == "" || !strings.EqualFold(item.Provider(), *provider)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterType is shorthand for Filter(&typ, nil).
func (b *Bindings) FilterType(typ string) []*Binding {
	return b.Filter(&typ, nil)
}
