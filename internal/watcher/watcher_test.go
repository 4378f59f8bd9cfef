package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestCoalescer(t *testing.T) {
	var (
		mu      sync.Mutex
		batches []map[string]string
	)
	c := newCoalescer(20*time.Millisecond, func(batch map[string]string) {
		mu.Lock()
		batches = append(batches, batch)
		mu.Unlock()
	})

	// Rapid-fire events on the same path collapse to the last action.
	c.Record("/vault/a.md", "created")
	c.Record("/vault/a.md", "modified")
	c.Record("/vault/b.md", "removed")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	got := batches[0]
	if got["/vault/a.md"] != "modified" {
		t.Errorf("a.md action = %q, want modified", got["/vault/a.md"])
	}
	if got["/vault/b.md"] != "removed" {
		t.Errorf("b.md action = %q, want removed", got["/vault/b.md"])
	}
}

func TestWalkDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"projects/alpha", "daily", ".trash/old", ".obsidian", "node_modules/pkg"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	dirs := walkDirs(root)
	got := make(map[string]bool)
	for _, d := range dirs {
		got[relativePath(d, root)] = true
	}

	for _, want := range []string{".", "projects", "projects/alpha", "daily"} {
		if !got[want] {
			t.Errorf("walkDirs missing %q, got %v", want, dirs)
		}
	}
	for _, skip := range []string{".trash", ".trash/old", ".obsidian", "node_modules", "node_modules/pkg"} {
		if got[skip] {
			t.Errorf("walkDirs included excluded dir %q", skip)
		}
	}
}

func TestRelativePath(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "sub", "note.md")
	if got := relativePath(abs, root); got != "sub/note.md" {
		t.Errorf("relativePath = %q, want sub/note.md", got)
	}
}
