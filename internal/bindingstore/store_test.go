package bindingstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/svcbind/internal/domain"
)

func writeBinding(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestLoad_EmptyRoot(t *testing.T) {
	t.Parallel()

	b, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestLoad_MissingRoot(t *testing.T) {
	t.Parallel()

	b, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestLoad_RootIsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRoot)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_Flat(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBinding(t, root, "db", map[string]string{
		"type":     "postgresql\n",
		"provider": "bitnami",
		"host":     "  db.local  ",
		"port":     "5432",
		".hidden":  "ignored",
		"sub/file": "ignored",
	})

	b, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	db := b.All()[0]
	assert.Equal(t, "db", db.Name())
	assert.Equal(t, filepath.Join(root, "db"), db.Path())
	assert.Equal(t, "postgresql", db.Type())
	assert.Equal(t, "bitnami", db.Provider())
	assert.Equal(t, map[string]string{"host": "db.local", "port": "5432"}, db.Secret())
}

func TestLoad_MissingTypeFailsWholeLoad(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBinding(t, root, "good", map[string]string{"type": "redis"})
	writeBinding(t, root, "bad", map[string]string{"host": "x"})

	b, err := Load(root)
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrInvalidBinding)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestLoad_Legacy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBinding(t, root, "cache", map[string]string{
		"metadata/kind":     "redis",
		"metadata/provider": "acme",
		"metadata/host":     "from-metadata",
		"secret/host":       "from-secret",
		"secret/password":   "pw",
	})

	b, err := Load(root, WithLayout(LayoutLegacy))
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	cache := b.All()[0]
	assert.Equal(t, "redis", cache.Type())
	assert.Equal(t, "acme", cache.Provider())
	assert.Equal(t, map[string]string{"host": "from-secret", "password": "pw"}, cache.Secret())
}

func TestLoad_LegacyLayoutIgnoresFlatFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBinding(t, root, "flat", map[string]string{"type": "redis"})

	_, err := Load(root, WithLayout(LayoutLegacy))
	assert.ErrorIs(t, err, domain.ErrInvalidBinding)
}

func TestLoad_FollowsSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "type"), []byte("mysql"), 0o600))

	dir := filepath.Join(root, "linked")
	require.NoError(t, os.Symlink(target, dir))

	b, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "mysql", b.All()[0].Type())
}

func TestLoad_DiscoveryOrderIsLexical(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeBinding(t, root, name, map[string]string{"type": "redis"})
	}

	b, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, b.Names())
}

func TestLoad_FilterIsStableAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBinding(t, root, "a", map[string]string{"type": "OAuth2", "provider": "GitHub"})
	writeBinding(t, root, "b", map[string]string{"type": "mysql"})
	writeBinding(t, root, "c", map[string]string{"type": "oauth2", "provider": "okta"})
	writeBinding(t, root, "d", map[string]string{"type": "oauth2"})

	b, err := Load(root)
	require.NoError(t, err)

	typ := "OAUTH2"
	names := func(items []*domain.Binding) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Name())
		}
		return out
	}

	assert.Equal(t, []string{"a", "c", "d"}, names(b.Filter(&typ, nil)))

	provider := "github"
	assert.Equal(t, []string{"a"}, names(b.Filter(&typ, &provider)))
	assert.Equal(t, []string{"a"}, names(b.Filter(nil, &provider)))
	assert.Len(t, b.Filter(nil, nil), 4)
}

func TestLoadBinding(t *testing.T) {
	t.Parallel()

	dir := writeBinding(t, t.TempDir(), "single", map[string]string{"type": "vault", "uri": "https://vault"})

	b, err := LoadBinding(dir)
	require.NoError(t, err)
	assert.Equal(t, "single", b.Name())
	v, ok := b.Get("uri")
	assert.True(t, ok)
	assert.Equal(t, "https://vault", v)
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Layout{"": LayoutFlat, "FLAT": LayoutFlat, "legacy": LayoutLegacy} {
		got, err := ParseLayout(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLayout("nested")
	assert.Error(t, err)
}

func TestRootFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{EnvCNBBindings: "/cnb"}
	assert.Equal(t, "/cnb", RootFromEnv(func(k string) string { return env[k] }))

	env[EnvServiceBindingRoot] = "/sb"
	assert.Equal(t, "/sb", RootFromEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "", RootFromEnv(func(string) string { return "" }))
}

func TestLoad_DanglingSecretFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := writeBinding(t, root, "db", map[string]string{"type": "postgresql"})
	target := filepath.Join(dir, "password")
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), target))

	b, err := Load(root)
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrMalformedSecret)
	assert.Contains(t, err.Error(), target)
}

func TestLoad_UnreadableSecretFile(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root := t.TempDir()
	dir := writeBinding(t, root, "db", map[string]string{"type": "postgresql", "password": "s3cret"})
	path := filepath.Join(dir, "password")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

	b, err := Load(root)
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrMalformedSecret)
	assert.Contains(t, err.Error(), path)
}
