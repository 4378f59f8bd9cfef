package vault

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

// Info holds aggregate vault statistics from a single pass.
type Info struct {
	Path        string `json:"vault_path"`
	NoteCount   int    `json:"note_count"`
	FolderCount int    `json:"folder_count"`
	TotalSize   int64  `json:"total_size_bytes"`
}

// inlineTagPattern matches Obsidian-style #tag tokens in note bodies,
// including unicode and nested (a/b) tags.
var inlineTagPattern = regexp.MustCompile(`#([\p{L}\p{N}_][\p{L}\p{N}_/-]*)`)

// Folders lists every folder in the vault recursively, excluding the
// trash and other hidden or system directories, sorted by path.
func (v *Vault) Folders() ([]string, error) {
	var folders []string
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() || path == v.root {
			return nil
		}
		if skipDir(d.Name()) {
			return filepath.SkipDir
		}
		folders = append(folders, v.relPath(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	sort.Strings(folders)
	return folders, nil
}

// Tags aggregates tag usage across all notes: frontmatter tags plus
// inline #tag tokens, each counted once per note that uses it.
func (v *Vault) Tags() (map[string]int, error) {
	notes, err := v.List("", true, 0)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, n := range notes {
		note, err := v.Get(n.Path)
		if err != nil {
			continue
		}
		parsed := ParseNote(note.Content)

		seen := make(map[string]bool)
		for _, tag := range parsed.Meta.Tags {
			if tag != "" {
				seen[tag] = true
			}
		}
		for _, m := range inlineTagPattern.FindAllStringSubmatch(parsed.Body, -1) {
			seen[m[1]] = true
		}
		for tag := range seen {
			counts[tag]++
		}
	}
	return counts, nil
}

// VaultInfo returns note count, folder count, and total note size.
func (v *Vault) VaultInfo() (*Info, error) {
	notes, err := v.List("", true, 0)
	if err != nil {
		return nil, err
	}
	folders, err := v.Folders()
	if err != nil {
		return nil, err
	}
	info := &Info{
		Path:        v.root,
		NoteCount:   len(notes),
		FolderCount: len(folders),
	}
	for _, n := range notes {
		info.TotalSize += n.Size
	}
	return info, nil
}
