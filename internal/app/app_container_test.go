//go:build container
// +build container

package app_test

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/svcbind/internal/app"
	"github.com/sufield/svcbind/internal/config"
	"github.com/sufield/svcbind/internal/testhelpers"
)

// TestRun_PostgresURLConnects resolves a binding for a live PostgreSQL
// server and connects with the composed URL and credentials.
func TestRun_PostgresURLConnects(t *testing.T) {
	pg := testhelpers.SetupPostgresContainer(t)
	root := t.TempDir()
	testhelpers.WriteBinding(t, root, "db", pg.BindingFiles())

	cfg, err := config.Load("", config.WithGetenv(func(key string) string {
		if key == "SERVICE_BINDING_ROOT" {
			return root
		}
		return ""
	}))
	require.NoError(t, err)

	application, err := app.Bootstrap(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := application.Run(ctx)
	require.NoError(t, err)

	jdbc := result.Properties["spring.datasource.url"]
	require.True(t, strings.HasPrefix(jdbc, "jdbc:postgresql://"), jdbc)
	r2dbc := result.Properties["spring.r2dbc.url"]
	assert.Equal(t, strings.TrimPrefix(jdbc, "jdbc:"), strings.TrimPrefix(r2dbc, "r2dbc:"))

	dsn, err := url.Parse(strings.TrimPrefix(jdbc, "jdbc:"))
	require.NoError(t, err)
	dsn.User = url.UserPassword(result.Properties["spring.datasource.username"], result.Properties["spring.datasource.password"])

	db, err := sql.Open("postgres", dsn.String())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var current string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT current_database()").Scan(&current))
	assert.Equal(t, pg.Database, current)
}
