package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/domain"
)

func openTestDB(t *testing.T) (*sql.DB, *repository.ProductRepo) {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "nested", "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db, DriverSQLite))
	return db, repository.NewProductRepo(db, DriverSQLite)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "x")
	require.ErrorContains(t, err, "unsupported")
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, DriverSQLite))
	require.NoError(t, RunMigrations(db, DriverSQLite))
	require.NoError(t, db.Ping())
}

func TestParseCatalog(t *testing.T) {
	products, err := LoadCatalogFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)
	require.Len(t, products, 3)

	require.Equal(t, ProductID("+1 hour"), products[0].ID)
	require.True(t, decimal.NewFromInt(750).Equal(products[0].Price.Decimal))
	require.Equal(t, "54df7dcb-1213-4b3c-ab61-92ed5f845535", products[2].ID)
	require.False(t, products[2].Priced())

	_, err = ParseCatalog([]byte("products:\n  - title: x\n    price: abc\n"))
	require.ErrorContains(t, err, "price")
	_, err = ParseCatalog([]byte("products:\n  - title: x\n    price: -1\n"))
	require.ErrorContains(t, err, "negative")
	_, err = ParseCatalog([]byte("products:\n  - price: 1\n"))
	require.ErrorContains(t, err, "title is required")
}

func TestSeedIsIdempotent(t *testing.T) {
	db, repo := openTestDB(t)
	ctx := context.Background()
	products, err := LoadCatalogFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	require.NoError(t, Seed(ctx, db, DriverSQLite, products))
	require.NoError(t, Seed(ctx, db, DriverSQLite, products))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "+1 hour", list[0].Title)
	require.Equal(t, "Mega button", list[2].Title)
}

func TestSeedRollsBackOnBadEntry(t *testing.T) {
	db, repo := openTestDB(t)
	ctx := context.Background()
	products, err := LoadCatalogFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	// the schema refuses an empty title
	broken := append(products[:2:2], domain.Product{ID: "blank"})
	err = Seed(ctx, db, DriverSQLite, broken)
	require.Error(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
