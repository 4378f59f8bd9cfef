// Package watcher monitors a vault for note changes and reports them.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sgx-labs/vaultmcp/internal/config"
)

const debounceDelay = 2 * time.Second

// Watch watches the vault for markdown changes and prints a debounced
// summary of each batch to stderr. It blocks until an unrecoverable
// error occurs or the event channel closes.
func Watch(vaultPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs := walkDirs(vaultPath)
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", d, err)
		}
	}

	fmt.Fprintf(os.Stderr, "Watching %d directories in %s\n", len(dirs), vaultPath)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop.\n\n")

	batch := newCoalescer(debounceDelay, func(batch map[string]string) {
		paths := make([]string, 0, len(batch))
		for p := range batch {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", batch[p], relativePath(p, vaultPath))
		}
	})

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !strings.HasSuffix(event.Name, ".md") {
				// Watch new directories as they appear.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !config.SkipDirs[filepath.Base(event.Name)] {
							if err := w.Add(event.Name); err != nil {
								fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", event.Name, err)
							}
						}
					}
				}
				continue
			}

			switch {
			case event.Has(fsnotify.Create):
				batch.Record(event.Name, "created")
			case event.Has(fsnotify.Write):
				batch.Record(event.Name, "modified")
			case event.Has(fsnotify.Rename):
				// Rename events refer to the old path.
				batch.Record(event.Name, "moved away")
			case event.Has(fsnotify.Remove):
				batch.Record(event.Name, "removed")
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  [WARN] Watch error: %v\n", err)
		}
	}
}

func walkDirs(root string) []string {
	var dirs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && config.SkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

func relativePath(filePath, vaultPath string) string {
	rel, err := filepath.Rel(vaultPath, filePath)
	if err != nil {
		return filePath
	}
	return filepath.ToSlash(rel)
}
