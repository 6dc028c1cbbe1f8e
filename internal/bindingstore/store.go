package bindingstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sufield/svcbind/internal/domain"
)

// Option configures Load.
type Option func(*loader)

// WithLayout selects the binding directory layout. Default is LayoutFlat.
func WithLayout(layout Layout) Option {
	return func(l *loader) {
		l.layout = layout
	}
}

// WithLogger sets the logger used for skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type loader struct {
	layout Layout
	logger *slog.Logger
}

// Load reads every binding under root.
//
// An empty root or a root that does not exist yields an empty catalogue.
// A root that exists but is not a directory fails with domain.ErrInvalidRoot.
// Bindings are returned in lexical order of their directory names.
func Load(root string, opts ...Option) (*domain.Bindings, error) {
	l := &loader{
		layout: LayoutFlat,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}

	if root == "" {
		l.logger.Debug("no binding root configured")
		return domain.NewBindings(), nil
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("binding root does not exist", "root", root)
		return domain.NewBindings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRoot, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRoot, root, err)
	}

	var items []*domain.Binding
	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		// Stat follows symlinks; projected volumes link binding directories.
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSecret, path, err)
		}
		if !info.IsDir() {
			l.logger.Debug("ignoring non-directory entry in binding root", "path", path)
			continue
		}

		b, err := l.loadBinding(entry.Name(), path)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}

	l.logger.Debug("loaded bindings", "root", root, "count", len(items), "layout", string(l.layout))
	return domain.NewBindings(items...), nil
}

// LoadBinding reads a single binding directory.
func LoadBinding(path string, opts ...Option) (*domain.Binding, error) {
	l := &loader{
		layout: LayoutFlat,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l.loadBinding(filepath.Base(path), path)
}

func (l *loader) loadBinding(name, path string) (*domain.Binding, error) {
	var (
		secret map[string]string
		err    error
	)

	switch l.layout {
	case LayoutLegacy:
		secret, err = readFiles(filepath.Join(path, metadataDir), true)
		if err != nil {
			return nil, err
		}
		nested, err := readFiles(filepath.Join(path, secretDir), true)
		if err != nil {
			return nil, err
		}
		for k, v := range nested {
			secret[k] = v
		}
	default:
		secret, err = readFiles(path, false)
		if err != nil {
			return nil, err
		}
	}

	return domain.NewBinding(name, path, secret)
}

// readFiles reads every non-hidden regular file in dir into a map keyed by
// file name. When optional is set a missing dir yields an empty map.
func readFiles(dir string, optional bool) (map[string]string, error) {
	out := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSecret, dir, err)
	}

	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSecret, path, err)
		}
		if info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path) // #nosec G304 - path is below the configured binding root
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSecret, path, err)
		}
		out[entry.Name()] = strings.TrimSpace(string(data))
	}

	return out, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
