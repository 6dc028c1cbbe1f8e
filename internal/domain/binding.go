package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Reserved secret keys. They are lifted out of the secret map into the
// dedicated Binding fields.
const (
	KeyType     = "type"
	KeyKind     = "kind"
	KeyProvider = "provider"
)

// Binding is one mounted service binding.
type Binding struct {
	name     string
	path     string
	typ      string
	provider string
	secret   map[string]string
}

// NewBinding creates a Binding from a raw secret map.
//
// Values are trimmed of surrounding whitespace. The type comes from the
// "type" key, falling back to "kind"; the provider comes from "provider".
// None of the reserved keys remain in the secret. A binding without a type
// is rejected with ErrInvalidBinding.
func NewBinding(name, path string, raw map[string]string) (*Binding, error) {
	secret := make(map[string]string, len(raw))
	for k, v := range raw {
		secret[k] = strings.TrimSpace(v)
	}

	typ := secret[KeyType]
	if typ == "" {
		typ = secret[KeyKind]
	}
	provider := secret[KeyProvider]
	delete(secret, KeyType)
	delete(secret, KeyKind)
	delete(secret, KeyProvider)

	if typ == "" {
		return nil, fmt.Errorf("%w: binding %q at %s", ErrInvalidBinding, name, path)
	}

	return &Binding{
		name:     name,
		path:     path,
		typ:      typ,
		provider: provider,
		secret:   secret,
	}, nil
}

// Name returns the binding name, usually the directory name.
func (b *Binding) Name() string {
	return b.name
}

// Path returns the binding's location on disk. It may be empty for
// bindings constructed in memory.
func (b *Binding) Path() string {
	return b.path
}

// Type returns the service kind, e.g. "postgresql".
func (b *Binding) Type() string {
	return b.typ
}

// Provider returns the optional provider, or "".
func (b *Binding) Provider() string {
	return b.provider
}

// Secret returns a copy of the secret map.
func (b *Binding) Secret() map[string]string {
	return maps.Clone(b.secret)
}

// Get returns a secret value and whether it was present.
func (b *Binding) Get(key string) (string, bool) {
	v, ok := b.secret[key]
	return v, ok
}

// Keys returns the secret keys in sorted order.
func (b *Binding) Keys() []string {
	return slices.Sorted(maps.Keys(b.secret))
}

// String returns a short description without secret values.
func (b *Binding) String() string {
	if b.provider != "" {
		return fmt.Sprintf("%s (type=%s, provider=%s)", b.name, b.typ, b.provider)
	}
	return fmt.Sprintf("%s (type=%s)", b.name, b.typ)
}
