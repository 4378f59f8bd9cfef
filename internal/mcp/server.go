// Package mcp implements the MCP server for vmcp.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sgx-labs/vaultmcp/internal/config"
	"github.com/sgx-labs/vaultmcp/internal/vault"
)

var v *vault.Vault

// Version is set by the caller (main) before calling Serve.
var Version = "dev"

// Serve starts the MCP server on stdio.
func Serve() error {
	root, err := config.RequireVault()
	if err != nil {
		return err
	}
	v, err = vault.Open(root)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vaultmcp",
		Version: Version,
	}, nil)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func registerTools(server *mcp.Server) {
	// list_notes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List markdown notes in the vault, sorted by path. Use this to browse the vault or check what exists in a folder.\n\nArgs:\n  folder: Relative folder path to list (default: vault root)\n  recursive: Include notes in subfolders (default true)\n  limit: Maximum notes to return (default 50, max 500)\n\nReturns a JSON array of {name, path, modified, size}.",
	}, handleListNotes)

	// get_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_note",
		Description: "Read the full content of a note, including any frontmatter. Paths are relative to the vault root, as returned by list_notes and the search tools.\n\nArgs:\n  path: Relative path of the note (e.g. 'projects/roadmap.md')\n\nReturns {name, path, modified, size, content}.",
	}, handleGetNote)

	// create_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_note",
		Description: "Create a new markdown note. Fails if the note already exists; use update_note to overwrite. A '.md' extension is added if missing and parent folders are created as needed.\n\nArgs:\n  path: Relative path for the new note\n  content: Markdown content\n  auto_frontmatter: Inject a frontmatter block with created/modified dates and empty tags when the content has none (default true)\n\nReturns the created note.",
	}, handleCreateNote)

	// update_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_note",
		Description: "Replace the content of an existing note. Fails if the note does not exist; use create_note for new notes. With auto_frontmatter the original created date, tags, and custom frontmatter keys are preserved unless the new content supplies its own, and modified is stamped to today.\n\nArgs:\n  path: Relative path of the note\n  content: New markdown content\n  auto_frontmatter: Merge and restamp frontmatter (default true)\n\nReturns the updated note.",
	}, handleUpdateNote)

	// delete_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_note",
		Description: "Move a note to the vault's .trash folder. Nothing is permanently deleted; the note keeps its relative path under .trash and can be restored by hand.\n\nArgs:\n  path: Relative path of the note to delete\n\nReturns {deleted, trash_path}.",
	}, handleDeleteNote)

	// search_notes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_notes",
		Description: "Find notes whose filename contains the query (case-insensitive). Use this when you know roughly what a note is called. For content search use full_text_search instead.\n\nArgs:\n  query: Substring to match against note names\n  limit: Maximum results (default 20, max 500)\n\nReturns matches ordered by match position, so prefix matches rank first.",
	}, handleSearchNotes)

	// full_text_search
	mcp.AddTool(server, &mcp.Tool{
		Name:        "full_text_search",
		Description: "Search note contents for a case-insensitive substring, like grep. Every matching line is reported with its line number and surrounding context. Frontmatter blocks are not searched, and line numbers count from the start of the note body, after any frontmatter.\n\nArgs:\n  query: Text to search for\n  context_lines: Lines of context around each match (default 2)\n  limit: Maximum matching notes (default 20, max 500)\n\nReturns a JSON array of {name, path, matches: [{line, context}]}.",
	}, handleFullTextSearch)

	// list_folders
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List every folder in the vault recursively, sorted by path. Hidden and system folders (.obsidian, .trash) are excluded.\n\nReturns a JSON array of relative folder paths.",
	}, handleListFolders)

	// get_tags
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_tags",
		Description: "List every tag used in the vault with the number of notes using it. Both frontmatter tags and inline #tags count, once per note.\n\nReturns a JSON object mapping tag to note count.",
	}, handleListTags)

	// get_vault_info
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_vault_info",
		Description: "Get vault statistics: root path, note count, folder count, and total size of all notes in bytes.\n\nReturns {vault_path, note_count, folder_count, total_size_bytes}.",
	}, handleVaultInfo)
}

// Tool input types

type listInput struct {
	Folder    string `json:"folder,omitempty" jsonschema:"Relative folder path (default: vault root)"`
	Recursive *bool  `json:"recursive,omitempty" jsonschema:"Include subfolders (default true)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum notes to return (default 50, max 500)"`
}

type getInput struct {
	Path string `json:"path" jsonschema:"Relative path from vault root"`
}

type writeInput struct {
	Path            string `json:"path" jsonschema:"Relative path of the note"`
	Content         string `json:"content" jsonschema:"Markdown content"`
	AutoFrontmatter *bool  `json:"auto_frontmatter,omitempty" jsonschema:"Manage the frontmatter block (default true)"`
}

type searchInput struct {
	Query string `json:"query" jsonschema:"Substring to match against note names"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 500)"`
}

type ftsInput struct {
	Query        string `json:"query" jsonschema:"Text to search for"`
	ContextLines *int   `json:"context_lines,omitempty" jsonschema:"Lines of context around each match (default 2)"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum matching notes (default 20, max 500)"`
}

type emptyInput struct{}

// Tool handlers

func handleListNotes(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	recursive := true
	if input.Recursive != nil {
		recursive = *input.Recursive
	}
	limit := clampLimit(input.Limit, config.DefaultListLimit)

	notes, err := v.List(input.Folder, recursive, limit)
	if err != nil {
		return errorResult(err), nil, nil
	}
	if len(notes) == 0 {
		return textResult("No notes found."), nil, nil
	}
	return jsonResult(notes), nil, nil
}

func handleGetNote(ctx context.Context, req *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, any, error) {
	note, err := v.Get(input.Path)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(screenNote(note)), nil, nil
}

func handleCreateNote(ctx context.Context, req *mcp.CallToolRequest, input writeInput) (*mcp.CallToolResult, any, error) {
	note, err := v.Create(input.Path, input.Content, autoFrontmatter(input))
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(note), nil, nil
}

func handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest, input writeInput) (*mcp.CallToolResult, any, error) {
	note, err := v.Update(input.Path, input.Content, autoFrontmatter(input))
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(note), nil, nil
}

func handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, any, error) {
	trashPath, err := v.Delete(input.Path)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{
		"deleted":    input.Path,
		"trash_path": trashPath,
	}), nil, nil
}

func handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	limit := clampLimit(input.Limit, config.MaxResults())
	matches, err := v.SearchTitles(input.Query, limit)
	if err != nil {
		return errorResult(err), nil, nil
	}
	if len(matches) == 0 {
		return textResult("No notes matched."), nil, nil
	}
	return jsonResult(matches), nil, nil
}

func handleFullTextSearch(ctx context.Context, req *mcp.CallToolRequest, input ftsInput) (*mcp.CallToolResult, any, error) {
	contextLines := config.ContextLines()
	if input.ContextLines != nil {
		contextLines = *input.ContextLines
	}
	limit := clampLimit(input.Limit, config.MaxResults())

	results, err := v.SearchText(input.Query, contextLines, limit)
	if err != nil {
		return errorResult(err), nil, nil
	}
	if len(results) == 0 {
		return textResult("No matches found."), nil, nil
	}
	return jsonResult(screenResults(results)), nil, nil
}

func handleListFolders(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	folders, err := v.Folders()
	if err != nil {
		return errorResult(err), nil, nil
	}
	if len(folders) == 0 {
		return textResult("No folders found."), nil, nil
	}
	return jsonResult(folders), nil, nil
}

func handleListTags(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	tags, err := v.Tags()
	if err != nil {
		return errorResult(err), nil, nil
	}
	if len(tags) == 0 {
		return textResult("No tags found."), nil, nil
	}
	return jsonResult(tags), nil, nil
}

func handleVaultInfo(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	info, err := v.VaultInfo()
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(info), nil, nil
}

// Helpers

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(value any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return textResult(string(data))
}

// errorResult reports tool failures as structured JSON so the model can
// distinguish a missing note from a bad path without parsing prose.
func errorResult(err error) *mcp.CallToolResult {
	data, _ := json.Marshal(map[string]string{
		"error": err.Error(),
		"kind":  kindOf(err),
	})
	r := textResult(string(data))
	r.IsError = true
	return r
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, vault.ErrOutOfVault):
		return "out_of_vault"
	case errors.Is(err, vault.ErrNotFound):
		return "not_found"
	case errors.Is(err, vault.ErrExists):
		return "already_exists"
	case errors.Is(err, vault.ErrInvalidInput):
		return "invalid_input"
	default:
		return "io_error"
	}
}

func clampLimit(limit, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > config.MaxLimit {
		return config.MaxLimit
	}
	return limit
}

func autoFrontmatter(input writeInput) bool {
	if input.AutoFrontmatter == nil {
		return true
	}
	return *input.AutoFrontmatter
}
