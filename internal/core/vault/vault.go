// Package vault locates note files within the vault directory.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Vault resolves which files under a root directory count as notes, using
// doublestar include/exclude glob patterns relative to the root.
type Vault struct {
	root    string
	include []string
	exclude []string
}

// New constructs a Vault. Patterns are assumed validated by config.
func New(root string, include, exclude []string) *Vault {
	return &Vault{root: root, include: include, exclude: exclude}
}

// Root returns the vault root directory.
func (v *Vault) Root() string { return v.root }

// Contains reports whether the given path (absolute or vault-relative) is a
// note per the include/exclude patterns.
func (v *Vault) Contains(path string) bool {
	rel := v.relative(path)
	if rel == "" {
		return false
	}

	included := false
	for _, pattern := range v.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, pattern := range v.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// List walks the vault and returns all note paths relative to the root,
// sorted. Hidden directories are skipped.
func (v *Vault) List() ([]string, error) {
	var notes []string

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if v.Contains(path) {
			notes = append(notes, v.relative(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	sort.Strings(notes)
	return notes, nil
}

// Abs returns the absolute path of a vault-relative note path.
func (v *Vault) Abs(rel string) string {
	return filepath.Join(v.root, rel)
}

// relative normalizes a path to vault-relative slash form. Returns "" for
// paths outside the vault.
func (v *Vault) relative(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	root, err := filepath.Abs(v.root)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Exists reports whether the vault root exists on disk.
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.root)
	return err == nil && info.IsDir()
}
