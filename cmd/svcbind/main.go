// Command svcbind resolves mounted service bindings into application
// properties and credential stores.
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionInfo := VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	registry := NewCommandRegistry(versionInfo)
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry) {
	r.Register(&Command{
		Name:        "resolve",
		Description: "Resolve bindings and write application properties",
		Usage:       "svcbind resolve [flags]",
		Examples: []string{
			"svcbind resolve",
			"svcbind resolve --config svcbind.yaml --output application.properties",
			"svcbind resolve --root /bindings --format env > bindings.env",
		},
		Run: resolveCommand,
	})

	r.Register(&Command{
		Name:        "list",
		Description: "List discovered bindings",
		Usage:       "svcbind list [flags]",
		Examples: []string{
			"svcbind list --root /bindings",
			"svcbind list --root /bindings --properties",
		},
		Run: listCommand,
	})

	r.Register(&Command{
		Name:        "keystore",
		Description: "Build a PKCS12 or JKS store from PEM files",
		Usage:       "svcbind keystore --cert <file> [--key <file>] [flags]",
		Examples: []string{
			"svcbind keystore --cert tls.crt --key tls.key --alias client",
			"svcbind keystore --cert ca.crt --type JKS --dir /tmp/stores",
		},
		Run: keystoreCommand,
	})

	r.Register(&Command{
		Name:        "project",
		Description: "Project Kubernetes binding Secrets onto disk",
		Usage:       "svcbind project --root <dir> (--secret <name> | --selector <labels>) [flags]",
		Examples: []string{
			"svcbind project --namespace default --secret orders-db --root /bindings",
			"svcbind project --selector app=orders --root /bindings --context kind-dev",
		},
		Run: projectCommand,
	})

	r.Register(&Command{
		Name:        "serve",
		Description: "Resolve once and serve a read-only inspection API",
		Usage:       "svcbind serve [flags]",
		Examples: []string{
			"svcbind serve --root /bindings",
			"svcbind serve --addr 127.0.0.1:9000",
		},
		Run: serveCommand,
	})

	r.Register(&Command{
		Name:        "validate",
		Description: "Validate svcbind configuration files",
		Usage:       "svcbind validate <config-file>",
		Examples: []string{
			"svcbind validate svcbind.yaml",
		},
		Run: validateCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "svcbind version [flags]",
		Examples: []string{
			"svcbind version",
			"svcbind version --verbose",
		},
		Run: func(args []string) error {
			return versionCommand(r.version, args)
		},
	})

	r.Register(&Command{
		Name:        "help",
		Description: "Show help information",
		Usage:       "svcbind help [command]",
		Examples: []string{
			"svcbind help",
			"svcbind help resolve",
		},
		Run: func(args []string) error {
			r.PrintHelp(stdout)
			return nil
		},
	})
}
