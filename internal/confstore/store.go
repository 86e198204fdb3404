// Package confstore reads and writes single JSON documents owned by
// third-party tools. A missing or blank file reads as an empty document;
// malformed content is surfaced, never reset. Writes go through a temp file
// and rename so a crash cannot leave a truncated config behind.
package confstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/halden/agentwire/internal/jsondoc"
)

// Store holds the path of one managed document. Every operation re-reads
// from disk; no state is cached between calls, so edits made by other
// programs between operations are respected.
type Store struct {
	path string
}

// New creates a store for the document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the document file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Read loads the document. A missing, empty or whitespace-only file yields
// an empty object; content that is present but not valid JSON yields a
// ParseError carrying the path.
func (s *Store) Read() (*jsondoc.Object, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return jsondoc.New(), nil
		}
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return jsondoc.New(), nil
	}

	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	return doc, nil
}

// Write serializes the document with stable key order and two-space indent
// and replaces the file atomically. Parent directories are created as
// needed. Documents hold API keys, so files are written 0600.
func (s *Store) Write(doc *jsondoc.Object) error {
	data, err := doc.Marshal()
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return WriteFile(s.path, append(data, '\n'))
}

// WriteFile writes raw bytes to path via a temp file in the same directory
// followed by a rename, creating parent directories first. Shared with
// stores for non-JSON formats that need the same write discipline.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
