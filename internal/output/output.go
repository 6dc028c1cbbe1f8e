// Package output renders a property map in the formats a JVM launcher
// consumes. Every renderer emits keys in sorted order.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sufield/svcbind/internal/domain"
)

// Renderer writes properties to w.
type Renderer interface {
	Render(w io.Writer, props domain.Properties) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, props domain.Properties) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, props domain.Properties) error {
	return f(w, props)
}

// Format names.
const (
	FormatProperties = "properties"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatEnv        = "env"
	FormatJavaOpts   = "java-opts"
)

var renderers = map[string]Renderer{
	FormatProperties: RendererFunc(renderProperties),
	FormatJSON:       RendererFunc(renderJSON),
	FormatYAML:       RendererFunc(renderYAML),
	FormatEnv:        RendererFunc(renderEnv),
	FormatJavaOpts:   RendererFunc(renderJavaOpts),
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Lookup returns the renderer for format, case-insensitively.
func Lookup(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return r, nil
}

// WriteFile renders props to path, replacing any existing file atomically.
// An empty path or "-" writes to stdout.
func WriteFile(path string, r Renderer, props domain.Properties) error {
	if path == "" || path == "-" {
		return r.Render(os.Stdout, props)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := r.Render(tmp, props); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
