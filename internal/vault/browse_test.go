package vault

import (
	"strings"
	"testing"
)

func TestFolders(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"projects/alpha/plan.md": "x",
		"projects/beta/plan.md":  "x",
		"daily/today.md":         "x",
		".trash/old/gone.md":     "x",
		".obsidian/app.json":     "{}",
	})

	folders, err := v.Folders()
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	want := []string{"daily", "projects", "projects/alpha", "projects/beta"}
	if strings.Join(folders, ",") != strings.Join(want, ",") {
		t.Errorf("Folders = %v, want %v", folders, want)
	}
}

func TestTags(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"a.md": "---\ntags:\n  - go\n  - mcp\n---\n\nBody with #go inline too.\n",
		"b.md": "No frontmatter but an inline #go tag and a #wip/draft one.\n",
		"c.md": "Nothing tagged here. A #1 ranking is not much of a tag but counts.\n",
	})

	tags, err := v.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}

	// a.md mentions go twice (frontmatter + inline) but counts once.
	wantCounts := map[string]int{
		"go":        2,
		"mcp":       1,
		"wip/draft": 1,
		"1":         1,
	}
	for tag, want := range wantCounts {
		if tags[tag] != want {
			t.Errorf("tags[%q] = %d, want %d", tag, tags[tag], want)
		}
	}
	if len(tags) != len(wantCounts) {
		t.Errorf("Tags = %v, want exactly %v", tags, wantCounts)
	}
}

func TestTagsUnicode(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"intl.md": "Notes about #日本語 and #café.\n",
	})
	tags, err := v.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if tags["日本語"] != 1 {
		t.Errorf("unicode tag missing: %v", tags)
	}
	if tags["café"] != 1 {
		t.Errorf("accented tag missing: %v", tags)
	}
}

func TestVaultInfo(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"a.md":          "12345",
		"sub/b.md":      "1234567890",
		"sub/skip.txt":  "not counted",
		".trash/old.md": "not counted either",
	})

	info, err := v.VaultInfo()
	if err != nil {
		t.Fatalf("VaultInfo: %v", err)
	}
	if info.NoteCount != 2 {
		t.Errorf("NoteCount = %d, want 2", info.NoteCount)
	}
	if info.FolderCount != 1 {
		t.Errorf("FolderCount = %d, want 1", info.FolderCount)
	}
	if info.TotalSize != 15 {
		t.Errorf("TotalSize = %d, want 15", info.TotalSize)
	}
	if info.Path != v.Root() {
		t.Errorf("Path = %q, want %q", info.Path, v.Root())
	}
}
