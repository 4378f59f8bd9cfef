package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/vaultmcp/internal/cli"
	"github.com/sgx-labs/vaultmcp/internal/watcher"
)

func foldersCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List vault folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			folders, err := v.Folders()
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(folders, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			if len(folders) == 0 {
				fmt.Println("No folders found.")
				return nil
			}
			for _, f := range folders {
				fmt.Printf("  %s\n", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func tagsCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List vault tags with usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			tags, err := v.Tags()
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(tags, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			if len(tags) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			names := make([]string, 0, len(tags))
			for t := range tags {
				names = append(names, t)
			}
			// Most used first, ties broken alphabetically.
			sort.Slice(names, func(i, j int) bool {
				if tags[names[i]] != tags[names[j]] {
					return tags[names[i]] > tags[names[j]]
				}
				return names[i] < names[j]
			})
			for _, t := range names {
				fmt.Printf("  %-30s %s%d%s\n", "#"+t, cli.Dim, tags[t], cli.Reset)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func infoCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show vault statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			info, err := v.VaultInfo()
			if err != nil {
				return err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(info, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("\n%sVault%s\n\n", cli.Bold, cli.Reset)
			fmt.Printf("  Path:    %s\n", cli.ShortenHome(info.Path))
			fmt.Printf("  Notes:   %s\n", cli.FormatNumber(info.NoteCount))
			fmt.Printf("  Folders: %s\n", cli.FormatNumber(info.FolderCount))
			fmt.Printf("  Size:    %s\n", cli.FormatSize(info.TotalSize))
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the vault and report note changes",
		Long:  "Monitor the vault filesystem and print created, modified, and removed notes to stderr with a 2-second debounce.",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault()
			if err != nil {
				return err
			}
			return watcher.Watch(v.Root())
		},
	}
}
