// Package vault implements file operations over an Obsidian-style markdown
// vault: path sandboxing, note CRUD with trash semantics, frontmatter
// management, naive search, and folder/tag enumeration.
//
// The filesystem is the only state. Nothing here caches or indexes, so
// concurrent edits by other programs are visible on the next call.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgx-labs/vaultmcp/internal/config"
)

// TrashDir is the reserved folder for reversible deletes, relative to the
// vault root. Notes moved here keep their original relative structure.
const TrashDir = ".trash"

// Vault is a handle to a vault root directory. All operations resolve
// paths strictly inside it.
type Vault struct {
	root string // absolute, cleaned
}

// Open validates root and returns a Vault for it. The root must exist and
// be a directory; anything else is a startup-time error for callers.
func Open(root string) (*Vault, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty vault path", ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: vault path %s is not a directory", ErrInvalidInput, abs)
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault root path.
func (v *Vault) Root() string {
	return v.root
}

// Resolve maps a vault-relative path to an absolute one, blocking
// traversal attacks, absolute-path injection, and reserved dot-paths
// (.trash, .obsidian, and friends). It never touches the filesystem.
func (v *Vault) Resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidInput)
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: absolute path %q", ErrOutOfVault, rel)
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrOutOfVault, rel)
	}
	for _, part := range strings.Split(clean, "/") {
		if strings.HasPrefix(part, ".") {
			return "", fmt.Errorf("%w: reserved path segment %q in %q", ErrOutOfVault, part, rel)
		}
	}
	full, err := filepath.Abs(filepath.Join(v.root, filepath.FromSlash(clean)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrOutOfVault, rel)
	}
	if full != v.root && !strings.HasPrefix(full, v.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutOfVault, rel)
	}
	return full, nil
}

// relPath converts an absolute path under the root back to the
// slash-separated vault-relative form used in all results.
func (v *Vault) relPath(abs string) string {
	rel, err := filepath.Rel(v.root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// skipDir reports whether a directory name is excluded from walks.
// Dot-directories (including .trash and .obsidian) are always excluded.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return config.SkipDirs[name]
}
