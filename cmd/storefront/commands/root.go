package commands

import (
	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/config"
)

var (
	cfg     config.Config
	verbose bool
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Terminal storefront and its catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(shopCmd(), serveCmd(), seedCmd(), configCmd())
	return root
}
