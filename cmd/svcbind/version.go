package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/output"
	"github.com/sufield/svcbind/internal/processor"
)

func versionCommand(v VersionInfo, args []string) error {
	fs := (&Command{Name: "version"}).NewFlagSet()
	verbose := fs.Bool("verbose", false, "Show supported binding types, formats and dependency versions")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "svcbind CLI %s (commit: %s, built: %s)\n", v.Version, v.Commit, v.Date)
	if !*verbose {
		return nil
	}

	fmt.Fprintf(stdout, "\nGo: %s %s/%s\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	table := NewTableWriter([]string{"Setting", "Value"})
	table.AddRow([]string{"Binding types", strings.Join(processor.Types(), ", ")})
	table.AddRow([]string{"Output formats", strings.Join(output.Formats(), ", ")})
	table.AddRow([]string{"Store types", strings.Join([]string{string(keystore.PKCS12), string(keystore.JKS)}, ", ")})
	table.Print(stdout)

	if info, ok := debug.ReadBuildInfo(); ok && len(info.Deps) > 0 {
		fmt.Fprintln(stdout, "\nDependencies:")
		deps := NewTableWriter([]string{"Module", "Version"})
		for _, dep := range info.Deps {
			deps.AddRow([]string{dep.Path, dep.Version})
		}
		deps.Print(stdout)
	}
	return nil
}
