package commands

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/apiclient"
	"github.com/jask/storefront/internal/broker"
	"github.com/jask/storefront/internal/checkout"
	"github.com/jask/storefront/internal/store"
	"github.com/jask/storefront/internal/tui"
	"github.com/jask/storefront/internal/view"
)

func shopCmd() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and place an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			return runShop(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&baseURL, "api", "", "API base URL (overrides api.base_url)")
	return cmd
}

func runShop(ctx context.Context) error {
	// the terminal belongs to bubbletea, so logs go to a file
	f, err := tea.LogToFile(cfg.UI.LogFile, "storefront")
	if err != nil {
		return err
	}
	defer f.Close()
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel()}))

	bus := broker.New(broker.WithLogger(logger))
	format := view.Format{
		Currency:         cfg.UI.Currency,
		PriceUnavailable: cfg.UI.PriceUnavailable,
		ImageBase:        cfg.API.CDNURL,
	}
	stores := checkout.Stores{
		Catalog:  store.NewCatalog(bus),
		Cart:     store.NewCart(bus),
		Customer: store.NewCustomer(bus),
	}
	views := checkout.Views{
		Header:   view.NewHeader(bus, "WEB-LAREK"),
		Gallery:  view.NewGallery(bus, format),
		Preview:  view.NewPreviewCard(bus, format),
		Basket:   view.NewBasket(bus, format),
		Order:    view.NewOrderForm(bus),
		Contacts: view.NewContactsForm(bus),
		Success:  view.NewSuccess(bus),
		Modal:    view.NewModal(bus),
	}

	sched := tui.NewScheduler()
	orch := checkout.New(checkout.Config{
		Bus:       bus,
		API:       apiclient.New(cfg.API.BaseURL, cfg.API.Timeout),
		Scheduler: sched,
		Stores:    stores,
		Views:     views,
		Format:    format,
		Logger:    logger,
	})
	orch.Start(ctx)
	defer orch.Stop()

	app := tui.New(bus, views, sched)
	defer app.Close()

	logger.Info("shop started", "api", cfg.API.BaseURL)
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
