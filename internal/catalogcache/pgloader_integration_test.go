package catalogcache

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogload"
)

// TestPgLoader_LoadRegionReadsRowsInsideReadOnlyTransaction exercises LoadRegion
// against a real postgres container, grounded on the teacher's
// TestDBTransactionConsistency and setupTestDB (internal/optimizer/cache_test.go):
// inserting rows for two regions and confirming LoadRegion returns only the
// rows for the requested region.
func TestPgLoader_LoadRegionReadsRowsInsideReadOnlyTransaction(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupTestPostgres(t)
	defer cleanup()

	_, err := pool.Exec(ctx, `
		INSERT INTO catalogue_offers (region, store_id, store_x, store_y, product_id, product_name, unit_cost, quantity)
		VALUES
			('zagreb', 'near', 1, 0, 'milk', 'Milk', 2.00, 10),
			('zagreb', 'far', 5, 0, 'eggs', 'Eggs', 3.50, 4),
			('split', 'riva', 0, 0, 'milk', 'Milk', 2.20, 8)
	`)
	require.NoError(t, err)

	loader := NewPgLoader(pool)
	rows, err := loader.LoadRegion(ctx, "zagreb")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byProduct := map[string]catalogload.Row{}
	for _, r := range rows {
		byProduct[string(r.ProductID)] = r
	}
	assert.Equal(t, 2.00, byProduct["milk"].UnitCost)
	assert.Equal(t, 3.50, byProduct["eggs"].UnitCost)
}

// TestPgLoader_LoadRegionReturnsEmptyForUnknownRegion confirms an absent
// region yields no rows and no error, rather than failing the transaction.
func TestPgLoader_LoadRegionReturnsEmptyForUnknownRegion(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupTestPostgres(t)
	defer cleanup()

	loader := NewPgLoader(pool)
	rows, err := loader.LoadRegion(ctx, "rijeka")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// setupTestPostgres starts a postgres:16-alpine container and migrates the
// catalogue_offers table documented on PgLoader, following the teacher's
// setupTestDB/runTestMigrations pair.
func setupTestPostgres(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		CREATE TABLE catalogue_offers (
			region       TEXT NOT NULL,
			store_id     TEXT NOT NULL,
			store_x      DOUBLE PRECISION NOT NULL,
			store_y      DOUBLE PRECISION NOT NULL,
			product_id   TEXT NOT NULL,
			product_name TEXT NOT NULL,
			unit_cost    DOUBLE PRECISION NOT NULL,
			quantity     INTEGER NOT NULL
		)
	`)
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		pool.Close()
		testcontainers.TerminateContainer(container)
	}

	return pool, cleanup
}
