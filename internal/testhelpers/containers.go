package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer is a running PostgreSQL container.
//
// Example usage:
//
//	func TestAgainstPostgres(t *testing.T) {
//	    pg := testhelpers.SetupPostgresContainer(t)
//	    root := t.TempDir()
//	    testhelpers.WriteBinding(t, root, "db", pg.BindingFiles())
//	    // ... resolve and assert ...
//	}
type PostgresContainer struct {
	Container testcontainers.Container

	// Host and Port are the host-side address of the server.
	Host string
	Port string

	Database string
	Username string
	Password string
}

// BindingFiles returns flat binding files describing the container.
func (pc *PostgresContainer) BindingFiles() map[string]string {
	return map[string]string{
		"type":     "postgresql",
		"host":     pc.Host,
		"port":     pc.Port,
		"database": pc.Database,
		"username": pc.Username,
		"password": pc.Password,
		"sslmode":  "disable",
	}
}

// SetupPostgresContainer starts postgres:16-alpine and registers cleanup.
//
// Requirements:
//   - Docker daemon running and accessible
func SetupPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pc := &PostgresContainer{
		Database: "app",
		Username: "svcbind",
		Password: "svcbind-test",
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       pc.Database,
			"POSTGRES_USER":     pc.Username,
			"POSTGRES_PASSWORD": pc.Password,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	pc.Container = container

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	pc.Host = host
	pc.Port = port.Port()

	t.Logf("PostgreSQL started: %s:%s", pc.Host, pc.Port)
	return pc
}
