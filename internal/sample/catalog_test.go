package sample

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
)

func TestCatalogShape(t *testing.T) {
	products := Catalog(rand.New(rand.NewSource(7)), 64)
	require.Len(t, products, 64)

	ids := map[string]bool{}
	unpriced := 0
	for _, p := range products {
		require.NotEmpty(t, p.Title)
		require.Contains(t, categories, p.Category)
		require.False(t, ids[p.ID])
		ids[p.ID] = true
		if !p.Priced() {
			unpriced++
			continue
		}
		require.True(t, p.Price.Decimal.IsPositive())
	}
	require.Equal(t, 8, unpriced)
}

func TestSeed(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "sample.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db, database.DriverSQLite))

	repo := repository.NewProductRepo(db, database.DriverSQLite)
	require.NoError(t, Seed(context.Background(), repo, rand.New(rand.NewSource(1)), 10))
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, n)
}
