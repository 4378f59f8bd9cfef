package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/vaultmcp/internal/cli"
	"github.com/sgx-labs/vaultmcp/internal/config"
)

func searchCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find notes by filename",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			matches, err := v.SearchTitles(query, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(matches, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			if len(matches) == 0 {
				fmt.Println("No notes matched.")
				return nil
			}
			for i, m := range matches {
				fmt.Printf("%d. %s%s%s\n   %s%s%s\n", i+1, cli.Bold, m.Name, cli.Reset, cli.Dim, m.Path, cli.Reset)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", config.MaxResults(), "Maximum results (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func grepCmd() *cobra.Command {
	var (
		contextLines int
		limit        int
		jsonOut      bool
	)
	cmd := &cobra.Command{
		Use:   "grep [query]",
		Short: "Search note contents",
		Long:  "Scan every note body for a case-insensitive substring and print matching lines with context, like grep. Frontmatter blocks are not searched; line numbers count from the start of the body, after any frontmatter.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results, err := v.SearchText(query, contextLines, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(results, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			if len(results) == 0 {
				fmt.Println("No matches found.")
				return nil
			}
			for _, r := range results {
				fmt.Printf("\n%s%s%s\n", cli.Cyan, r.Path, cli.Reset)
				for _, m := range r.Matches {
					fmt.Printf("  %s:%d:%s\n", cli.Dim, m.Line, cli.Reset)
					for _, line := range strings.Split(m.Context, "\n") {
						fmt.Printf("    %s\n", line)
					}
				}
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntVar(&contextLines, "context", config.ContextLines(), "Lines of context around each match")
	cmd.Flags().IntVar(&limit, "limit", config.MaxResults(), "Maximum matching notes (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
