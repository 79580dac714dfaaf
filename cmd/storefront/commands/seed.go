package commands

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/sample"
)

func seedCmd() *cobra.Command {
	var demo int
	cmd := &cobra.Command{
		Use:   "seed [catalog.yaml]",
		Short: "Load products into the database from a YAML catalog or generate demo ones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && demo == 0 {
				return errors.New("give a catalog file or --demo N")
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			dbc := cfg.Server.Database
			db, err := database.Open(dbc.Driver, dbc.DSN)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.RunMigrations(db, dbc.Driver); err != nil {
				return err
			}
			if len(args) == 1 {
				return seedFrom(cmd.Context(), db, dbc.Driver, args[0], logger)
			}
			r := rand.New(rand.NewSource(time.Now().UnixNano()))
			if err := sample.Seed(cmd.Context(), repository.NewProductRepo(db, dbc.Driver), r, demo); err != nil {
				return err
			}
			logger.Info("demo catalog seeded", "products", demo)
			return nil
		},
	}
	cmd.Flags().IntVar(&demo, "demo", 0, "generate this many demo products instead of reading a file")
	return cmd
}

func seedFrom(ctx context.Context, db *sql.DB, driver, path string, logger *slog.Logger) error {
	products, err := database.LoadCatalogFile(path)
	if err != nil {
		return err
	}
	if err := database.Seed(ctx, db, driver, products); err != nil {
		return err
	}
	logger.Info("catalog seeded", "file", path, "products", len(products))
	return nil
}
