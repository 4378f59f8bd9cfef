package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/vaultmcp/internal/cli"
	"github.com/sgx-labs/vaultmcp/internal/config"
	"github.com/sgx-labs/vaultmcp/internal/vault"
)

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Read and write vault notes",
	}
	cmd.AddCommand(noteListCmd())
	cmd.AddCommand(noteShowCmd())
	cmd.AddCommand(noteNewCmd())
	cmd.AddCommand(noteRmCmd())
	return cmd
}

func noteListCmd() *cobra.Command {
	var (
		folder  string
		flat    bool
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			notes, err := v.List(folder, !flat, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(notes, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			if len(notes) == 0 {
				fmt.Println("No notes found.")
				return nil
			}
			for _, n := range notes {
				fmt.Printf("  %s  %s%s · %s%s\n",
					n.Path, cli.Dim, n.Modified[:10], cli.FormatSize(n.Size), cli.Reset)
			}
			fmt.Printf("\n  %s%s notes%s\n", cli.Dim, cli.FormatNumber(len(notes)), cli.Reset)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "List only this folder")
	cmd.Flags().BoolVar(&flat, "flat", false, "Do not descend into subfolders")
	cmd.Flags().IntVar(&limit, "limit", config.DefaultListLimit, "Maximum notes to show (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func noteShowCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a note's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			note, err := v.Get(args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(note, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			fmt.Print(note.Content)
			if !strings.HasSuffix(note.Content, "\n") {
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func noteNewCmd() *cobra.Command {
	var (
		content string
		update  bool
		noMeta  bool
	)
	cmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Create a note (or update with --update)",
		Long:  "Create a new note at the given vault-relative path. Content comes from --content or stdin. A frontmatter block with created/modified dates is added unless --no-frontmatter is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			if content == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			auto := !noMeta
			note, err := v.Create(args[0], content, auto)
			if update && errors.Is(err, vault.ErrExists) {
				note, err = v.Update(args[0], content, auto)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s✓%s Wrote %s (%s)\n", cli.Green, cli.Reset, note.Path, cli.FormatSize(note.Size))
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Note content (default: read from stdin)")
	cmd.Flags().BoolVar(&update, "update", false, "Overwrite if the note already exists")
	cmd.Flags().BoolVar(&noMeta, "no-frontmatter", false, "Do not inject or manage frontmatter")
	return cmd
}

func noteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [path]",
		Short: "Move a note to the vault trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			trashPath, err := v.Delete(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s✓%s Moved to %s\n", cli.Green, cli.Reset, trashPath)
			return nil
		},
	}
}
