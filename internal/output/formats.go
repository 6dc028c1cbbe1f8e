package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/sufield/svcbind/internal/domain"
)

func renderProperties(w io.Writer, props domain.Properties) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range props.Keys() {
		if _, _, err := p.Set(k, props[k]); err != nil {
			return fmt.Errorf("property %q: %w", k, err)
		}
	}
	_, err := p.Write(w, properties.UTF8)
	return err
}

func renderJSON(w io.Writer, props domain.Properties) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string(props))
}

func renderYAML(w io.Writer, props domain.Properties) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]string(props)); err != nil {
		return err
	}
	return enc.Close()
}

// renderEnv writes one KEY='value' line per property using relaxed binding
// names: upper case, with "." and "-" replaced by "_".
func renderEnv(w io.Writer, props domain.Properties) error {
	for _, k := range props.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", EnvName(k), shellescape.Quote(props[k])); err != nil {
			return err
		}
	}
	return nil
}

// renderJavaOpts writes a single line of -Dkey=value system properties.
func renderJavaOpts(w io.Writer, props domain.Properties) error {
	opts := make([]string, 0, len(props))
	for _, k := range props.Keys() {
		opts = append(opts, shellescape.Quote("-D"+k+"="+props[k]))
	}
	_, err := fmt.Fprintln(w, strings.Join(opts, " "))
	return err
}

// EnvName converts a property key to its environment variable form.
func EnvName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
