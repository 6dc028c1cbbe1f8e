package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/svcbind/internal/domain"
)

func TestNewBinding_ExtractsReservedKeys(t *testing.T) {
	t.Parallel()

	b, err := domain.NewBinding("db", "/b/db", map[string]string{
		"type":     " postgresql ",
		"provider": "crunchy",
		"host":     "h\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgresql", b.Type())
	assert.Equal(t, "crunchy", b.Provider())
	assert.Equal(t, map[string]string{"host": "h"}, b.Secret())
	assert.Equal(t, []string{"host"}, b.Keys())
}

func TestNewBinding_KindFallback(t *testing.T) {
	t.Parallel()

	b, err := domain.NewBinding("x", "", map[string]string{"kind": "redis", "password": "p"})
	require.NoError(t, err)
	assert.Equal(t, "redis", b.Type())

	_, present := b.Get("kind")
	assert.False(t, present, "kind must not remain in the secret")
}

func TestNewBinding_MissingType(t *testing.T) {
	t.Parallel()

	tests := []map[string]string{
		nil,
		{},
		{"type": "   "},
		{"host": "h"},
	}

	for _, raw := range tests {
		_, err := domain.NewBinding("broken", "/b/broken", raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidBinding)
		assert.Contains(t, err.Error(), "broken")
	}
}

func TestBinding_SecretIsCopy(t *testing.T) {
	t.Parallel()

	b, err := domain.NewBinding("x", "", map[string]string{"type": "redis", "host": "h"})
	require.NoError(t, err)

	s := b.Secret()
	s["host"] = "mutated"

	v, _ := b.Get("host")
	assert.Equal(t, "h", v)
}

func TestBindings_Lookup(t *testing.T) {
	t.Parallel()

	a, _ := domain.NewBinding("a", "", map[string]string{"type": "redis"})
	b, _ := domain.NewBinding("b", "", map[string]string{"type": "redis"})
	cat := domain.NewBindings(a, b)

	got, ok := cat.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = cat.Lookup("c")
	assert.False(t, ok)

	var empty *domain.Bindings
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Names())
}

func TestProperties_Redacted(t *testing.T) {
	t.Parallel()

	p := domain.Properties{
		"spring.datasource.password":           "hunter2",
		"spring.kafka.ssl.key-store-password":  "abc",
		"spring.datasource.url":                "jdbc:postgresql://h:1/d",
		"spring.security.oauth2.client-secret": "s",
	}

	r := p.Redacted()
	assert.Equal(t, domain.RedactedValue, r["spring.datasource.password"])
	assert.Equal(t, domain.RedactedValue, r["spring.kafka.ssl.key-store-password"])
	assert.Equal(t, domain.RedactedValue, r["spring.security.oauth2.client-secret"])
	assert.Equal(t, "jdbc:postgresql://h:1/d", r["spring.datasource.url"])
	assert.Equal(t, "hunter2", p["spring.datasource.password"], "original must be untouched")

	leaky := domain.Properties{
		"spring.cloud.vault.app-role.secret-id":    "s3cr3t-id",
		"spring.kafka.properties.sasl.jaas.config": `org.apache.kafka.common.security.plain.PlainLoginModule required username="app" password="hunter2";`,
		"spring.cloud.vault.app-role.role-id":      "role",
	}.Redacted()
	assert.Equal(t, domain.RedactedValue, leaky["spring.cloud.vault.app-role.secret-id"])
	assert.Equal(t, domain.RedactedValue, leaky["spring.kafka.properties.sasl.jaas.config"])
	assert.Equal(t, "role", leaky["spring.cloud.vault.app-role.role-id"])

	assert.Equal(t, []string{
		"spring.datasource.password",
		"spring.datasource.url",
		"spring.kafka.ssl.key-store-password",
		"spring.security.oauth2.client-secret",
	}, p.Keys())
}
