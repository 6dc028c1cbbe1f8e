package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/processor"
)

func validateCommand(args []string) error {
	fs := (&Command{Name: "validate"}).NewFlagSet()

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Validate svcbind configuration files

USAGE:
    svcbind validate <config-file>

Environment overrides (SVCBIND_*, SERVICE_BINDING_ROOT, CNB_BINDINGS) are
applied before validation, the same way resolve applies them.

EXAMPLES:
    # Validate configuration
    svcbind validate svcbind.yaml

    # Use in CI/CD pipelines
    if svcbind validate config/svcbind.yaml; then
        echo "Configuration is valid"
    fi`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("config file path required")
	}

	configPath := fs.Arg(0)
	cfg, err := config.Load(configPath, config.WithGetenv(os.Getenv))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg, configPath)
	return nil
}

func printConfigSummary(cfg *config.Config, path string) {
	fmt.Fprintf(stdout, "✓ Valid configuration: %s\n", path)

	if !cfg.IsEnabled() {
		fmt.Fprintln(stdout, "  ⚠ Resolution is globally disabled (enabled: false)")
	}

	fmt.Fprintln(stdout, "\nBindings:")
	root := cfg.Bindings.Root
	if root == "" {
		root = "(unset, no bindings will be read)"
	}
	fmt.Fprintf(stdout, "  Root:   %s\n", root)
	fmt.Fprintf(stdout, "  Layout: %s\n", cfg.Bindings.Layout)

	fmt.Fprintln(stdout, "\nCredential stores:")
	fmt.Fprintf(stdout, "  Type: %s\n", cfg.Keystore.Type)
	dir := cfg.Keystore.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	fmt.Fprintf(stdout, "  Dir:  %s\n", dir)

	fmt.Fprintln(stdout, "\nOutput:")
	fmt.Fprintf(stdout, "  Format: %s\n", cfg.Output.Format)
	dest := cfg.Output.Path
	if dest == "" || dest == "-" {
		dest = "stdout"
	}
	fmt.Fprintf(stdout, "  Path:   %s\n", dest)

	var disabled []string
	for _, typ := range processor.Types() {
		if !cfg.TypeEnabled(typ) {
			disabled = append(disabled, typ)
		}
	}
	if len(disabled) > 0 {
		slices.Sort(disabled)
		fmt.Fprintln(stdout, "\nDisabled binding types:")
		for _, typ := range disabled {
			fmt.Fprintf(stdout, "  %s\n", typ)
		}
	}
}
