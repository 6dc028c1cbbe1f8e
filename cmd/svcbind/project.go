package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/kube"
)

// newKubeClient is replaced in tests.
var newKubeClient = kube.NewClient

func projectCommand(args []string) error {
	fs := (&Command{Name: "project"}).NewFlagSet()
	namespace := fs.String("namespace", "default", "Kubernetes namespace")
	secret := fs.String("secret", "", "Secret name")
	selector := fs.String("selector", "", "Label selector matching binding Secrets")
	root := fs.String("root", "", "Binding root to write into (default: $SERVICE_BINDING_ROOT)")
	kubeconfig := fs.String("kubeconfig", "", "Path to kubeconfig (default: $KUBECONFIG or ~/.kube/config)")
	kubeContext := fs.String("context", "", "Kubeconfig context")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Project Kubernetes binding Secrets onto disk

USAGE:
    svcbind project --root <dir> (--secret <name> | --selector <labels>) [flags]

Each Secret becomes one flat binding directory named after the Secret (or
its svcbind.io/binding-name annotation). The binding type comes from a
"type" key, the svcbind.io/type annotation, or a Secret type of the form
servicebinding.io/<type>. Existing directories are replaced atomically.

EXAMPLES:
    svcbind project --namespace shop --secret orders-db --root /bindings
    svcbind project --selector svcbind.io/workload=orders --root /bindings
    svcbind project --secret cache --root ./bindings --context kind-svcbind

FLAGS:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if (*secret == "") == (*selector == "") {
		fs.Usage()
		return fmt.Errorf("exactly one of --secret or --selector is required")
	}
	if *root == "" {
		*root = os.Getenv("SERVICE_BINDING_ROOT")
	}
	if *root == "" {
		return fmt.Errorf("--root is required when SERVICE_BINDING_ROOT is unset")
	}

	logger := config.NewLogger(config.LogSection{Level: *logLevel, Format: "text"}, stderr)

	client, err := newKubeClient(*kubeconfig, *kubeContext)
	if err != nil {
		return err
	}
	projector := kube.NewProjector(client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dirs []string
	if *secret != "" {
		dir, err := projector.Project(ctx, *namespace, *secret, *root)
		if err != nil {
			return err
		}
		dirs = append(dirs, dir)
	} else {
		dirs, err = projector.ProjectSelected(ctx, *namespace, *selector, *root)
		if err != nil {
			return err
		}
	}

	if len(dirs) == 0 {
		fmt.Fprintf(stdout, "No Secrets in %s matched %q\n", *namespace, *selector)
		return nil
	}
	for _, dir := range dirs {
		fmt.Fprintf(stdout, "✓ %s\n", dir)
	}
	return nil
}
