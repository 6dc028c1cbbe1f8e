package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
	"github.com/sufield/svcbind/internal/testhelpers"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromEnv(config.WithGetenv(func(k string) string { return env[k] }))
	require.NoError(t, err)
	return cfg
}

func TestRun_FlatLayout(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	chain := testhelpers.NewChain(t, "mq")
	testhelpers.WriteBinding(t, root, "db", map[string]string{
		"type": "mariadb", "host": "db", "port": "3306", "database": "app",
	})
	testhelpers.WriteBinding(t, root, "mq", map[string]string{
		"type": "rabbitmq", "host": "mq", "ca.crt": chain.CAPEM,
	})

	application, err := Bootstrap(loadConfig(t, map[string]string{
		"SERVICE_BINDING_ROOT":  root,
		"SVCBIND_KEYSTORE_TYPE": "jks",
		"SVCBIND_KEYSTORE_DIR":  t.TempDir(),
	}), nil)
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Cleanup() })

	assert.Equal(t, []string{"db", "mq"}, result.Bindings.Names())
	assert.Equal(t, "r2dbc:mariadb://db:3306/app", result.Properties["spring.r2dbc.url"])
	assert.Equal(t, "JKS", result.Properties["spring.rabbitmq.ssl.trust-store-type"])
	require.Len(t, result.Stores, 1)
	assert.Equal(t, keystore.JKS, result.Stores[0].Type)
	assert.Equal(t, ".jks", filepath.Ext(result.Stores[0].Path))
}

func TestRun_LegacyLayout(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	testhelpers.WriteBinding(t, root, "cache", map[string]string{
		"metadata/kind": "redis",
		"metadata/host": "metadata-host",
		"secret/host":   "secret-host",
	})

	application, err := Bootstrap(loadConfig(t, map[string]string{
		"CNB_BINDINGS":   root,
		"SVCBIND_LAYOUT": "legacy",
	}), nil)
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-host", result.Properties["spring.data.redis.host"])
}

func TestRun_Disabled(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	testhelpers.WriteBinding(t, root, "db", map[string]string{"type": "mysql", "host": "h"})

	application, err := Bootstrap(loadConfig(t, map[string]string{
		"SERVICE_BINDING_ROOT":  root,
		"SVCBIND_MYSQL_ENABLED": "false",
	}), nil)
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Properties)
	assert.Equal(t, 1, result.Bindings.Len())
}

func TestRun_NoRoot(t *testing.T) {
	t.Parallel()
	application, err := Bootstrap(loadConfig(t, nil), nil)
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Bindings.Len())
	assert.Empty(t, result.Properties)
}

func TestRun_InvalidBindingAbortsPass(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	testhelpers.WriteBinding(t, root, "untyped", map[string]string{"host": "h"})

	application, err := Bootstrap(loadConfig(t, map[string]string{"SERVICE_BINDING_ROOT": root}), nil)
	require.NoError(t, err)

	_, err = application.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidBinding)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := loadConfig(t, nil)
	cfg.Keystore.Type = "BKS"

	_, err := Bootstrap(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keystore.type")
}

func TestResult_Cleanup(t *testing.T) {
	t.Parallel()
	chain := testhelpers.NewChain(t, "x")
	a, err := keystore.New(keystore.WithDir(t.TempDir())).Synthesize(chain.CAPEM, "", "x")
	require.NoError(t, err)

	r := &Result{Stores: []keystore.Artifact{a}}
	require.NoError(t, r.Cleanup())
	assert.NoFileExists(t, a.Path)
	assert.Empty(t, r.Stores)
}
