package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/vaultmcp/internal/cli"
	"github.com/sgx-labs/vaultmcp/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vmcp configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Generate a default config file in the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.RequireVault()
			if err != nil {
				return userError(err.Error(),
					"Set OBSIDIAN_VAULT_PATH or pass --vault to pick the vault")
			}
			configPath := config.ConfigFilePath(root)
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config already exists: %s", configPath)
			}
			if err := config.GenerateConfig(root); err != nil {
				return fmt.Errorf("generate config: %w", err)
			}
			fmt.Printf("%s✓%s Wrote %s\n", cli.Green, cli.Reset, cli.ShortenHome(configPath))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(config.ShowConfig())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print path to config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.RequireVault()
			if err != nil {
				return userError(err.Error(),
					"Set OBSIDIAN_VAULT_PATH or pass --vault to pick the vault")
			}
			fmt.Println(config.ConfigFilePath(root))
			return nil
		},
	})

	return cmd
}
