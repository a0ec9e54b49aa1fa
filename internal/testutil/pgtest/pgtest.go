// Package pgtest boots a migrated PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"testing"

	"bizcare-service/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

// Start runs postgres:16-alpine, applies the embedded migrations and returns
// a pool on it. The test is skipped under -short or when Docker is
// unavailable.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("bizcare"),
		postgres.WithUsername("bizcare"),
		postgres.WithPassword("bizcare"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := db.NewMigrator(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: dsn, MaxConns: 32})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}
