package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sufield/svcbind/internal/bindingstore"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/output"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Validate checks that every enumerated value is recognized. It expects
// defaults to have been applied.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if _, err := bindingstore.ParseLayout(cfg.Bindings.Layout); err != nil {
		return fmt.Errorf("invalid bindings.layout: %w", err)
	}
	if _, err := urlcompose.ParseDriverFamily(cfg.URLs.MySQLDriverFamily); err != nil {
		return fmt.Errorf("invalid urls.mysql_driver_family: %w", err)
	}
	if _, err := keystore.ParseStoreType(cfg.Keystore.Type); err != nil {
		return fmt.Errorf("invalid keystore.type: %w", err)
	}
	if _, err := output.Lookup(cfg.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format: %w", err)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q (use text or json)", cfg.Log.Format)
	}
	for typ := range cfg.Processors {
		if strings.TrimSpace(typ) == "" {
			return errors.New("processors: empty binding type")
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}
