package bindingstore

import (
	"fmt"
	"strings"
)

// Layout selects how files inside a binding directory are read.
type Layout string

const (
	// LayoutFlat reads every regular file directly under the binding directory.
	LayoutFlat Layout = "flat"

	// LayoutLegacy reads metadata/ and secret/ and merges them, secret/ winning.
	LayoutLegacy Layout = "legacy"
)

const (
	metadataDir = "metadata"
	secretDir   = "secret"
)

// ParseLayout converts a configuration value into a Layout.
// The empty string selects LayoutFlat.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutFlat:
		return LayoutFlat, nil
	case LayoutLegacy:
		return LayoutLegacy, nil
	default:
		return "", fmt.Errorf("unknown binding layout %q (use %q or %q)", s, LayoutFlat, LayoutLegacy)
	}
}
