package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
	"github.com/useadvisor/advisor/store/db"
)

// NewTestingStore returns a migrated sqlite-backed store in a temp dir.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "advisor_test.db"),
	}
	driver, err := db.NewDBDriver(p)
	require.NoError(t, err)

	st := store.New(driver, p)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// GetPostgresDSN returns a DSN for PostgreSQL testing. A custom DSN can be
// provided via POSTGRES_TEST_DSN; otherwise a throwaway container is started.
func GetPostgresDSN(t *testing.T) string {
	if dsn := os.Getenv("POSTGRES_TEST_DSN"); dsn != "" {
		return dsn
	}

	pgContainer, err := postgres.Run(t.Context(),
		"postgres:16-alpine",
		postgres.WithDatabase("advisor_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("skipping, could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(t.Context(), "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

// GetMySQLDSN returns a DSN for MySQL testing. A custom DSN can be provided
// via MYSQL_TEST_DSN; otherwise a throwaway container is started.
func GetMySQLDSN(t *testing.T) string {
	if dsn := os.Getenv("MYSQL_TEST_DSN"); dsn != "" {
		return dsn
	}

	mysqlContainer, err := tcmysql.Run(t.Context(),
		"mysql:8.0",
		tcmysql.WithDatabase("advisor_test"),
		tcmysql.WithUsername("testuser"),
		tcmysql.WithPassword("testpassword"),
	)
	if err != nil {
		t.Skipf("skipping, could not start mysql container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(mysqlContainer); err != nil {
			t.Logf("failed to terminate mysql container: %v", err)
		}
	})

	dsn, err := mysqlContainer.ConnectionString(t.Context())
	require.NoError(t, err)
	return dsn
}
