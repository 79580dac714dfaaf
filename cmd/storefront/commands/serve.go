package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/notify"
	"github.com/jask/storefront/internal/server"
)

func serveCmd() *cobra.Command {
	var addr, catalog string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog and order API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, catalog)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&catalog, "catalog", "", "seed the catalog from this YAML file before serving")
	return cmd
}

func runServe(ctx context.Context, catalog string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	dbc := cfg.Server.Database

	db, err := database.Open(dbc.Driver, dbc.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(db, dbc.Driver); err != nil {
		return err
	}

	products := repository.NewProductRepo(db, dbc.Driver)
	orders := repository.NewOrderRepo(db, dbc.Driver)
	if catalog != "" {
		if err := seedFrom(ctx, db, dbc.Driver, catalog, logger); err != nil {
			return err
		}
	}

	var notifier server.OrderNotifier
	if cfg.Server.AMQP.URL != "" {
		n, err := notify.Dial(cfg.Server.AMQP.URL, cfg.Server.AMQP.Queue, logger)
		if err != nil {
			return err
		}
		defer n.Close()
		notifier = n
		logger.Info("order notifications enabled", "queue", cfg.Server.AMQP.Queue)
	}

	return server.New(products, orders, notifier, logger).ListenAndServe(ctx, cfg.Server.Addr)
}
