package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// NoteInfo is the summary returned by listings and searches.
type NoteInfo struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Modified string `json:"modified"`
	Size     int64  `json:"size"`
}

// Note is a full note: summary plus raw content.
type Note struct {
	NoteInfo
	Content string `json:"content"`
}

// List returns note summaries under folder (vault root when empty),
// sorted by path. With recursive=false only direct children are listed.
// A limit <= 0 means no limit.
func (v *Vault) List(folder string, recursive bool, limit int) ([]NoteInfo, error) {
	base := v.root
	if folder != "" {
		var err error
		base, err = v.Resolve(folder)
		if err != nil {
			return nil, err
		}
	}
	info, err := os.Stat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: folder %q", ErrNotFound, folder)
		}
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a folder", ErrInvalidInput, folder)
	}

	var notes []NoteInfo
	for _, fp := range v.walkNotes(base, recursive) {
		fi, err := os.Stat(fp)
		if err != nil {
			continue
		}
		notes = append(notes, v.noteInfo(fp, fi))
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

// Get reads a note's full content.
func (v *Vault) Get(path string) (*Note, error) {
	abs, err := v.Resolve(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read note: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat note: %w", err)
	}
	return &Note{NoteInfo: v.noteInfo(abs, fi), Content: string(content)}, nil
}

// Create writes a new note. The path gets a .md extension if missing and
// parent folders are created as needed. When autoFrontmatter is set and
// the content carries no frontmatter of its own, a block with
// created/modified stamped to today and an empty tag set is injected.
func (v *Vault) Create(path, content string, autoFrontmatter bool) (*Note, error) {
	path = ensureMarkdownExt(path)
	abs, err := v.Resolve(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	if autoFrontmatter {
		if parsed := ParseNote(content); !parsed.HasMeta {
			meta := Meta{Created: today(), Modified: today(), Tags: []string{}}
			content = RenderNote(meta, content)
		}
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return v.Get(path)
}

// Update replaces an existing note's content. When autoFrontmatter is
// set, the on-disk created date, tags, and unknown frontmatter keys are
// preserved unless the caller's content supplies its own, and modified is
// always stamped to today regardless of caller input.
func (v *Vault) Update(path, content string, autoFrontmatter bool) (*Note, error) {
	path = ensureMarkdownExt(path)
	abs, err := v.Resolve(path)
	if err != nil {
		return nil, err
	}
	existing, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read note: %w", err)
	}

	if autoFrontmatter {
		content = mergeFrontmatter(string(existing), content)
	}

	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return v.Get(path)
}

// mergeFrontmatter builds the updated note text: caller fields win over
// the on-disk block, except created (never changed once set) and
// modified (always restamped).
func mergeFrontmatter(existing, incoming string) string {
	disk := ParseNote(existing)
	in := ParseNote(incoming)

	meta := in.Meta
	if !in.HasMeta {
		meta = disk.Meta
	} else if disk.HasMeta {
		if disk.Meta.Created != "" {
			meta.Created = disk.Meta.Created
		}
		if meta.Tags == nil {
			meta.Tags = disk.Meta.Tags
		}
		if meta.Extra == nil {
			meta.Extra = disk.Meta.Extra
		}
	}
	if meta.Created == "" {
		meta.Created = today()
	}
	meta.Modified = today()
	return RenderNote(meta, in.Body)
}

// Delete moves a note into the trash folder, preserving its relative
// structure. If that trash slot is already occupied the newcomer gets a
// timestamp suffix so no trashed copy is ever overwritten.
func (v *Vault) Delete(path string) (string, error) {
	abs, err := v.Resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("stat note: %w", err)
	}

	rel := v.relPath(abs)
	trashAbs := filepath.Join(v.root, TrashDir, filepath.FromSlash(rel))
	if _, err := os.Stat(trashAbs); err == nil {
		ext := filepath.Ext(trashAbs)
		stamp := time.Now().Format("20060102T150405")
		trashAbs = strings.TrimSuffix(trashAbs, ext) + "-" + stamp + ext
	}
	if err := os.MkdirAll(filepath.Dir(trashAbs), 0o755); err != nil {
		return "", fmt.Errorf("create trash folder: %w", err)
	}
	if err := os.Rename(abs, trashAbs); err != nil {
		return "", fmt.Errorf("move to trash: %w", err)
	}
	return v.relPath(trashAbs), nil
}

// walkNotes returns absolute paths of all markdown files under base.
// Hidden files are excluded, matching what Resolve will accept, so every
// listed note is also readable and deletable.
func (v *Vault) walkNotes(base string, recursive bool) []string {
	var files []string
	if !recursive {
		entries, err := os.ReadDir(base)
		if err != nil {
			return nil
		}
		for _, e := range entries {
			if !e.IsDir() && isNoteFile(e.Name()) {
				files = append(files, filepath.Join(base, e.Name()))
			}
		}
		return files
	}
	filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != base && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isNoteFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// isNoteFile reports whether a file name counts as a vault note.
func isNoteFile(name string) bool {
	return strings.HasSuffix(name, ".md") && !strings.HasPrefix(name, ".")
}

func (v *Vault) noteInfo(abs string, fi os.FileInfo) NoteInfo {
	return NoteInfo{
		Name:     strings.TrimSuffix(filepath.Base(abs), ".md"),
		Path:     v.relPath(abs),
		Modified: fi.ModTime().Format(time.RFC3339),
		Size:     fi.Size(),
	}
}

func ensureMarkdownExt(path string) string {
	if !strings.HasSuffix(path, ".md") {
		return path + ".md"
	}
	return path
}
