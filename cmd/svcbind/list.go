package main

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func listCommand(args []string) error {
	fs := (&Command{Name: "list"}).NewFlagSet()
	var cf configFlags
	cf.register(fs)
	showProps := fs.Bool("properties", false, "Also resolve and print properties, with secrets masked")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `List discovered bindings

USAGE:
    svcbind list [flags]

Binding values are never printed. With --properties the bindings are also
resolved and the resulting properties shown with sensitive values masked;
credential stores generated for that are removed before exit.

EXAMPLES:
    svcbind list --root /bindings
    svcbind list --root /bindings --layout legacy --properties

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

	bindings, err := application.LoadBindings()
	if err != nil {
		return err
	}

	if bindings.Len() == 0 {
		fmt.Fprintf(stdout, "No bindings found under %q\n", application.Config.Bindings.Root)
		return nil
	}

	table := NewTableWriter([]string{"NAME", "TYPE", "PROVIDER", "KEYS"})
	for _, b := range bindings.All() {
		provider := b.Provider()
		if provider == "" {
			provider = "-"
		}
		table.AddRow([]string{b.Name(), b.Type(), provider, strings.Join(b.Keys(), ",")})
	}
	table.Print(stdout)

	if !*showProps {
		return nil
	}

	props, stores, err := application.Resolver.Resolve(context.Background(), bindings)
	if err != nil {
		return err
	}
	for _, s := range stores {
		if err := s.Remove(); err != nil {
			application.Logger.Warn("failed to remove credential store", "path", s.Path, "error", err)
		}
	}

	redacted := props.Redacted()
	fmt.Fprintln(stdout)
	propTable := NewTableWriter([]string{"PROPERTY", "VALUE"})
	for _, k := range redacted.Keys() {
		propTable.AddRow([]string{k, redacted[k]})
	}
	propTable.Print(stdout)
	return nil
}
