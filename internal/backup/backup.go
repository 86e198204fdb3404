// Package backup snapshots tool configuration files before they are
// mutated, giving the user a restore path when a merge goes wrong or a
// malformed file needs hand-fixing.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oklog/ulid/v2"
)

// Manager stores snapshots under one backups directory, one subdirectory
// per tool. Snapshot names start with a ULID, so lexical order is creation
// order.
type Manager struct {
	dir string
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the backups root.
func (m *Manager) Dir() string {
	return m.dir
}

// Snapshot copies the file at path into the tool's snapshot directory and
// returns the snapshot's relative name. A missing source file needs no
// backup and returns "".
func (m *Manager) Snapshot(tool, path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s", ulid.Make(), filepath.Base(path))
	rel := filepath.Join(tool, name)
	dstPath := filepath.Join(m.dir, rel)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("copy snapshot: %w", err)
	}
	return rel, nil
}

// List returns snapshot names (relative to the backups root) matching a
// doublestar pattern, newest first within each directory. An empty pattern
// lists everything.
func (m *Manager) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**/*"
	}
	matches, err := doublestar.FilepathGlob(filepath.Join(m.dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob backups: %w", err)
	}

	var out []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(m.dir, match)
		if err != nil {
			continue
		}
		out = append(out, rel)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

// Prune keeps the newest keep snapshots per original file and deletes the
// rest. Returns the number of snapshots removed.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	names, err := m.List("")
	if err != nil {
		return 0, err
	}

	// Group by tool directory + original filename; names are already
	// newest-first thanks to the ULID prefix.
	groups := make(map[string][]string)
	for _, name := range names {
		groups[groupKey(name)] = append(groups[groupKey(name)], name)
	}

	removed := 0
	for _, group := range groups {
		for _, name := range group[min(keep, len(group)):] {
			if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
				return removed, fmt.Errorf("prune %s: %w", name, err)
			}
			removed++
		}
	}
	return removed, nil
}

// groupKey strips the ULID prefix from a snapshot name, leaving
// "<tool>/<original-filename>".
func groupKey(name string) string {
	dir, base := filepath.Split(name)
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[i+1:]
	}
	return dir + base
}
