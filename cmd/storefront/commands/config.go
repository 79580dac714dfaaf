package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the config file",
	}
	cmd.AddCommand(configInitCmd(), configPathCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	var baseURL, addr string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective config (defaults, file, environment, flags) to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&baseURL, "api", "", "API base URL to store")
	cmd.Flags().StringVar(&addr, "addr", "", "server listen address to store")
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		},
	}
}
