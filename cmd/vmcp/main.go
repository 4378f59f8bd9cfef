// Package main is the entrypoint for the vmcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/vaultmcp/internal/config"
	mcpserver "github.com/sgx-labs/vaultmcp/internal/mcp"
	"github.com/sgx-labs/vaultmcp/internal/vault"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "vmcp",
		Short: "MCP server for Obsidian vaults",
		Long:  "vmcp — read, write, search, and browse a markdown vault over MCP or from the command line.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(versionCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(noteCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(grepCmd())
	root.AddCommand(foldersCmd())
	root.AddCommand(tagsCmd())
	root.AddCommand(infoCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(configCmd())

	// Global --vault flag
	root.PersistentFlags().StringVar(&config.VaultOverride, "vault", "", "Vault path (overrides env and config)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vmcp version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("vmcp %s\n", Version)
			return nil
		},
	}
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP stdio server",
		Long:  "Serve the vault over the Model Context Protocol on stdin/stdout. Register this command with your MCP client.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mcpserver.Version = Version
			return mcpserver.Serve()
		},
	}
}

// openVault resolves and opens the configured vault, with a hint on failure.
// A broken config file is reported but does not block the command.
func openVault() (*vault.Vault, error) {
	if w := config.ConfigWarning(); w != "" {
		fmt.Fprintf(os.Stderr, "vmcp: WARNING: %s\n", w)
	}
	root, err := config.RequireVault()
	if err != nil {
		return nil, userError(err.Error(),
			"Set OBSIDIAN_VAULT_PATH, pass --vault, or run 'vmcp config init'")
	}
	v, err := vault.Open(root)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	return v, nil
}

// ---------- error helpers ----------

type vmcpError struct {
	message string
	hint    string
}

func (e *vmcpError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &vmcpError{message: message, hint: hint}
}
