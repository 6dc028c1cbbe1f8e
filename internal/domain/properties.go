package domain

import (
	"maps"
	"slices"
	"strings"
)

// RedactedValue replaces sensitive values in Redacted output.
const RedactedValue = "******"

var sensitiveSuffixes = []string{
	"password",
	"secret",
	"token",
	"credentials",
	"private-key",
	"client-secret",
	"api-key",
	"secret-id",
	"jaas.config",
}

// Properties is the flat key/value map produced by one resolution pass.
type Properties map[string]string

// Set stores value at key, replacing any previous value.
func (p Properties) Set(key, value string) {
	p[key] = value
}

// Has reports whether key is set.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Keys returns all keys sorted.
func (p Properties) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Merge copies every entry of other into p, overwriting.
func (p Properties) Merge(other Properties) {
	maps.Copy(p, other)
}

// Redacted returns a copy with sensitive values masked.
func (p Properties) Redacted() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		if IsSensitiveKey(k) {
			v = RedactedValue
		}
		out[k] = v
	}
	return out
}

// IsSensitiveKey reports whether a property or secret key names a credential.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(k, suffix) {
			return true
		}
	}
	return false
}
