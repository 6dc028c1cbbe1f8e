package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/output"
)

func resolveCommand(args []string) error {
	fs := (&Command{Name: "resolve"}).NewFlagSet()
	var cf configFlags
	cf.register(fs)
	format := fs.String("format", "", "Output format: properties, json, yaml, env, java-opts")
	outPath := fs.String("output", "", "Output file, or - for stdout")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Resolve bindings and write application properties

USAGE:
    svcbind resolve [flags]

The binding root is read from --root, the config file, SERVICE_BINDING_ROOT
or CNB_BINDINGS, in that order. Generated credential stores are left in
place for the application to read.

EXAMPLES:
    # Properties file for a Spring application
    svcbind resolve --output config/application.properties

    # Shell variables
    eval "$(svcbind resolve --format env)"

    # JVM system properties
    JAVA_TOOL_OPTIONS="$(svcbind resolve --format java-opts)"

FLAGS:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	application, err := cf.bootstrap(os.Getenv)
	if err != nil {
		return err
	}

	if *format != "" {
		application.Config.Output.Format = *format
	}
	if *outPath != "" {
		application.Config.Output.Path = *outPath
	}
	renderer, err := output.Lookup(application.Config.Output.Format)
	if err != nil {
		return err
	}

	result, err := application.Run(context.Background())
	if err != nil {
		return err
	}

	if err := writeProperties(application.Config.Output.Path, renderer, result.Properties); err != nil {
		// The properties that point at the stores were never written.
		_ = result.Cleanup()
		return err
	}

	application.Logger.Debug("wrote properties", "format", application.Config.Output.Format, "path", application.Config.Output.Path)
	return nil
}

func writeProperties(path string, r output.Renderer, props domain.Properties) error {
	if path == "" || path == "-" {
		return r.Render(stdout, props)
	}
	return output.WriteFile(path, r, props)
}
