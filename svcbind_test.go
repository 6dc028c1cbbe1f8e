package svcbind

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/svcbind/internal/testhelpers"
)

func TestResolve_ConfigFile(t *testing.T) {
	root := t.TempDir()
	chain := testhelpers.NewChain(t, "events")
	testhelpers.WriteBinding(t, root, "events", map[string]string{
		"type":              "kafka",
		"bootstrap-servers": "k:9093",
		"ca.crt":            chain.CAPEM,
	})
	storeDir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "svcbind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"bindings:\n  root: "+root+"\nkeystore:\n  dir: "+storeDir+"\n"), 0o600))

	// Environment must not leak a different root into the test.
	t.Setenv("SERVICE_BINDING_ROOT", "")
	t.Setenv("CNB_BINDINGS", "")

	res, err := Resolve(context.Background(), cfgPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"events"}, res.Bindings)
	assert.Equal(t, "k:9093", res.Properties["spring.kafka.bootstrap-servers"])
	require.Len(t, res.Stores, 1)
	path := res.Stores[0].Path
	assert.FileExists(t, path)

	var buf bytes.Buffer
	require.NoError(t, res.WriteTo(&buf, "env"))
	assert.Contains(t, buf.String(), "SPRING_KAFKA_BOOTSTRAP_SERVERS=k:9093")

	require.NoError(t, res.Close())
	assert.NoFileExists(t, path)
	assert.Empty(t, res.Stores)
}

func TestResolveFromEnv(t *testing.T) {
	root := t.TempDir()
	testhelpers.WriteBinding(t, root, "db", map[string]string{
		"type": "postgresql", "host": "db", "port": "5432", "database": "app",
	})
	t.Setenv(EnvConfig, "")
	t.Setenv("CNB_BINDINGS", "")
	t.Setenv("SERVICE_BINDING_ROOT", root)

	res, err := ResolveFromEnv(context.Background())
	require.NoError(t, err)
	defer func() { _ = res.Close() }()

	assert.Equal(t, "jdbc:postgresql://db:5432/app", res.Properties["spring.datasource.url"])
}

func TestResolve_BadConfigPath(t *testing.T) {
	_, err := Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestResult_CloseNil(t *testing.T) {
	var r *Result
	assert.NoError(t, r.Close())
}
