//go:build !debug

package assert

// Invariant is a no-op outside debug builds.
func Invariant(bool, string) {}

// Invariantf is a no-op outside debug builds.
func Invariantf(bool, string, ...any) {}
