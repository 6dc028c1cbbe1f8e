package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/sufield/svcbind/internal/testhelpers"
)

// capture redirects the CLI output streams for one test. Tests using it
// must not run in parallel.
func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })

	t.Setenv("SERVICE_BINDING_ROOT", "")
	t.Setenv("CNB_BINDINGS", "")
	t.Setenv("SVCBIND_CONFIG", "")
	return &out, &errOut
}

func newRegistry() *CommandRegistry {
	r := NewCommandRegistry(VersionInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})
	registerCommands(r)
	return r
}

func postgresBinding(t *testing.T, root string) {
	t.Helper()
	testhelpers.WriteBinding(t, root, "orders-db", map[string]string{
		"type":     "postgresql",
		"host":     "db.internal",
		"port":     "5432",
		"database": "orders",
		"username": "app",
		"password": "s3cret",
	})
}

func TestExecute_NoCommand(t *testing.T) {
	out, _ := capture(t)
	err := newRegistry().Execute(nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "USAGE:")
}

func TestExecute_UnknownCommand(t *testing.T) {
	_, errOut := capture(t)
	err := newRegistry().Execute([]string{"frobnicate"})
	require.ErrorContains(t, err, "unknown command: frobnicate")
	assert.Contains(t, errOut.String(), "COMMANDS:")
}

func TestExecute_HelpListsCommandsInOrder(t *testing.T) {
	out, _ := capture(t)
	require.NoError(t, newRegistry().Execute([]string{"help"}))

	help := out.String()
	resolveAt := strings.Index(help, "    resolve ")
	versionAt := strings.Index(help, "    version ")
	require.Positive(t, resolveAt)
	assert.Less(t, resolveAt, versionAt)
}

func TestVersion(t *testing.T) {
	out, _ := capture(t)
	require.NoError(t, newRegistry().Execute([]string{"version"}))
	assert.Equal(t, "svcbind CLI 1.2.3 (commit: abc123, built: 2026-01-01)\n", out.String())
}

func TestVersion_Verbose(t *testing.T) {
	out, _ := capture(t)
	require.NoError(t, newRegistry().Execute([]string{"version", "--verbose"}))
	assert.Contains(t, out.String(), "postgresql-replicated")
	assert.Contains(t, out.String(), "java-opts")
}

func TestResolve_JSONToStdout(t *testing.T) {
	out, _ := capture(t)
	root := t.TempDir()
	postgresBinding(t, root)

	err := newRegistry().Execute([]string{"resolve", "--root", root, "--format", "json"})
	require.NoError(t, err)

	var props map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &props))
	assert.Equal(t, "app", props["spring.datasource.username"])
	assert.Equal(t, "s3cret", props["spring.datasource.password"])
	assert.Equal(t, "jdbc:postgresql://db.internal:5432/orders", props["spring.datasource.url"])
	assert.Equal(t, "r2dbc:postgresql://db.internal:5432/orders", props["spring.r2dbc.url"])
}

func TestResolve_WritesFile(t *testing.T) {
	capture(t)
	root := t.TempDir()
	postgresBinding(t, root)
	dest := filepath.Join(t.TempDir(), "application.yaml")

	err := newRegistry().Execute([]string{"resolve", "--root", root, "--format", "yaml", "--output", dest})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spring.datasource.username: app")

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestResolve_ConfigFile(t *testing.T) {
	out, _ := capture(t)
	root := t.TempDir()
	postgresBinding(t, root)

	cfgPath := filepath.Join(t.TempDir(), "svcbind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
bindings:
  root: `+root+`
processors:
  postgresql:
    enabled: false
output:
  format: env
`), 0o600))

	require.NoError(t, newRegistry().Execute([]string{"resolve", "--config", cfgPath}))
	assert.Empty(t, out.String())
}

func TestResolve_UnknownFormat(t *testing.T) {
	capture(t)
	err := newRegistry().Execute([]string{"resolve", "--root", t.TempDir(), "--format", "toml"})
	require.ErrorContains(t, err, "unknown output format")
}

func TestList(t *testing.T) {
	out, _ := capture(t)
	root := t.TempDir()
	postgresBinding(t, root)

	require.NoError(t, newRegistry().Execute([]string{"list", "--root", root, "--properties"}))

	text := out.String()
	assert.Contains(t, text, "orders-db")
	assert.Contains(t, text, "postgresql")
	assert.Contains(t, text, "spring.datasource.username")
	assert.NotContains(t, text, "s3cret")
}

func TestList_Empty(t *testing.T) {
	out, _ := capture(t)
	root := t.TempDir()
	require.NoError(t, newRegistry().Execute([]string{"list", "--root", root}))
	assert.Contains(t, out.String(), "No bindings found")
}

func TestKeystore(t *testing.T) {
	out, _ := capture(t)
	chain := testhelpers.NewChain(t, "client")
	dir := t.TempDir()
	certFile := filepath.Join(dir, "tls.crt")
	keyFile := filepath.Join(dir, "tls.key")
	require.NoError(t, os.WriteFile(certFile, []byte(chain.ChainPEM), 0o600))
	require.NoError(t, os.WriteFile(keyFile, []byte(chain.KeyPEM), 0o600))

	storeDir := t.TempDir()
	err := newRegistry().Execute([]string{"keystore", "--cert", certFile, "--key", keyFile, "--alias", "client", "--dir", storeDir})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Wrote PKCS12 key store")
	entries, err := os.ReadDir(storeDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestKeystore_RequiresCert(t *testing.T) {
	capture(t)
	err := newRegistry().Execute([]string{"keystore"})
	require.ErrorContains(t, err, "--cert is required")
}

func TestValidate(t *testing.T) {
	out, _ := capture(t)
	cfgPath := filepath.Join(t.TempDir(), "svcbind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
bindings:
  root: /bindings
  layout: legacy
processors:
  vault:
    enabled: false
`), 0o600))

	require.NoError(t, newRegistry().Execute([]string{"validate", cfgPath}))
	text := out.String()
	assert.Contains(t, text, "✓ Valid configuration")
	assert.Contains(t, text, "Layout: legacy")
	assert.Contains(t, text, "vault")
}

func TestValidate_Invalid(t *testing.T) {
	capture(t)
	cfgPath := filepath.Join(t.TempDir(), "svcbind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keystore:\n  type: BKS\n"), 0o600))

	err := newRegistry().Execute([]string{"validate", cfgPath})
	require.Error(t, err)
}

func TestValidate_RequiresPath(t *testing.T) {
	capture(t)
	require.ErrorContains(t, newRegistry().Execute([]string{"validate"}), "config file path required")
}

func TestProject(t *testing.T) {
	out, _ := capture(t)
	client := fake.NewClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "orders-db", Namespace: "shop"},
		Type:       "servicebinding.io/postgresql",
		Data:       map[string][]byte{"host": []byte("db"), "password": []byte("pw")},
	})
	prev := newKubeClient
	newKubeClient = func(string, string) (kubernetes.Interface, error) { return client, nil }
	t.Cleanup(func() { newKubeClient = prev })

	root := t.TempDir()
	err := newRegistry().Execute([]string{"project", "--namespace", "shop", "--secret", "orders-db", "--root", root})
	require.NoError(t, err)

	assert.Contains(t, out.String(), filepath.Join(root, "orders-db"))
	typ, err := os.ReadFile(filepath.Join(root, "orders-db", "type"))
	require.NoError(t, err)
	assert.Equal(t, "postgresql", string(typ))
}

func TestProject_SecretOrSelector(t *testing.T) {
	capture(t)
	err := newRegistry().Execute([]string{"project", "--secret", "a", "--selector", "b=c", "--root", t.TempDir()})
	require.ErrorContains(t, err, "exactly one of --secret or --selector")
}

func TestTableWriter(t *testing.T) {
	table := NewTableWriter([]string{"NAME", "TYPE"})
	table.AddRow([]string{"café", "redis"})
	table.AddRow([]string{"orders-db"})

	var buf bytes.Buffer
	table.Print(&buf)

	assert.Equal(t, ""+
		"┌───────────┬───────┐\n"+
		"│ NAME      │ TYPE  │\n"+
		"├───────────┼───────┤\n"+
		"│ café      │ redis │\n"+
		"│ orders-db │       │\n"+
		"└───────────┴───────┘\n", buf.String())
}
