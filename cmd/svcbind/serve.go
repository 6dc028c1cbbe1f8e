package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sufield/svcbind/internal/inspect"
)

func serveCommand(args []string) error {
	fs := (&Command{Name: "serve"}).NewFlagSet()
	var cf configFlags
	cf.register(fs)
	addr := fs.String("addr", "", "Listen address (default: inspect.listen_addr from config)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Resolve once and serve a read-only inspection API

USAGE:
    svcbind serve [flags]

ENDPOINTS:
    GET /healthz             Liveness
    GET /bindings            Binding names, types and keys (no values)
    GET /bindings/{name}     One binding
    GET /properties          Resolved properties, secrets masked (?format=)
    GET /stores              Generated credential stores (no passwords)

Credential stores generated for the pass are removed on shutdown.

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
	if *addr != "" {
		application.Config.Inspect.ListenAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := application.Run(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			application.Logger.Warn("failed to remove credential stores", "error", err)
		}
	}()

	snap := inspect.NewSnapshot(result.Bindings, result.Properties, result.Stores)
	server := inspect.NewServer(snap, application.Logger)
	return server.Serve(ctx, application.Config.Inspect.ListenAddr)
}
