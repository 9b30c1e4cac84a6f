// Copyright (c) 2026 MADR contributors. All rights reserved.

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/migration"
	"github.com/eduardoklosowski/madr/internal/platform/postgres"
)

// EnvDatabaseURL names the database used by integration tests. It is wiped on every run.
const EnvDatabaseURL = "MADR_TEST_DATABASE_URL"

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// Postgres recreates the schema and returns a pool, or skips the test when
// no database is configured.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	require.NoError(t, migration.Reset(dsn, MigrationsDir(), Logger()))

	pool, err := postgres.NewPool(context.Background(), dsn, postgres.DefaultOptions(), Logger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}
