package main

import (
	"fmt"
	"path/filepath"

	"github.com/sufield/svcbind/internal/keystore"
)

func keystoreCommand(args []string) error {
	fs := (&Command{Name: "keystore"}).NewFlagSet()
	certFile := fs.String("cert", "", "PEM certificate chain file (required)")
	keyFile := fs.String("key", "", "PEM private key file; omit for a trust store")
	alias := fs.String("alias", "svcbind", "Entry alias")
	storeType := fs.String("type", string(keystore.PKCS12), "Store type: PKCS12 or JKS")
	dir := fs.String("dir", "", "Output directory (default: system temp directory)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Build a PKCS12 or JKS store from PEM files

USAGE:
    svcbind keystore --cert <file> [--key <file>] [flags]

With --key the store holds one private key entry carrying the certificate
chain. Without it every certificate becomes a trusted entry named
<alias>-0, <alias>-1, and so on. The path and generated password are
printed on stdout.

EXAMPLES:
    svcbind keystore --cert tls.crt --key tls.key --alias client
    svcbind keystore --cert ca.crt --type JKS --dir /tmp/stores

FLAGS:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *certFile == "" {
		fs.Usage()
		return fmt.Errorf("--cert is required")
	}

	typ, err := keystore.ParseStoreType(*storeType)
	if err != nil {
		return err
	}

	synth := keystore.New(
		keystore.WithDir(*dir),
		keystore.WithStoreType(typ),
	)

	key := ""
	if *keyFile != "" {
		key = "file:" + absPath(*keyFile)
	}
	artifact, err := synth.Synthesize("file:"+absPath(*certFile), key, *alias)
	if err != nil {
		return err
	}

	kind := "trust store"
	if artifact.KeyStore {
		kind = "key store"
	}
	fmt.Fprintf(stdout, "✓ Wrote %s %s\n", artifact.Type, kind)
	fmt.Fprintf(stdout, "  Path:     %s\n", artifact.Path)
	fmt.Fprintf(stdout, "  Alias:    %s\n", artifact.Alias)
	fmt.Fprintf(stdout, "  Password: %s\n", artifact.Password)
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
