// Package domain contains the data model for service binding resolution.
//
// The package has no dependencies outside the standard library. It defines
// value objects and the error taxonomy; discovery, mapping and credential
// synthesis live in their own packages under internal/.
//
// Files and types
// -----------------------
//   - binding.go
//   - Binding: one discovered service binding (name, path, type, provider,
//     secret). Construction fails fast when no type can be resolved.
//
//   - bindings.go
//   - Bindings: ordered, immutable catalogue of bindings with
//     case-insensitive filtering by type and provider.
//
//   - properties.go
//   - Properties: the flat destination map produced by one resolution pass,
//     with sorted iteration and redaction for display.
//
//   - errors.go
//   - Sentinel errors for root, binding, secret and credential failures.
package domain
