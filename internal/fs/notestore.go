package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"notetree/internal/nt"
)

// OSNoteStore is the real filesystem implementation of nt.NoteStore.
// Note bodies are stored as <dir>/<note id>.md. Paths handed out by Write are
// relative to dir, so a notes directory can be moved together with its
// database.
type OSNoteStore struct {
	dir string
}

// NewOSNoteStore creates a note store rooted at dir, creating dir if needed.
func NewOSNoteStore(dir string) (*OSNoteStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("notes directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating notes directory: %w", err)
	}
	return &OSNoteStore{dir: dir}, nil
}

// Dir returns the directory holding note bodies.
func (s *OSNoteStore) Dir() string {
	return s.dir
}

// PathFor returns the stored path for a note id.
func (s *OSNoteStore) PathFor(noteID string) string {
	return noteID + ".md"
}

// resolve maps a stored path onto the filesystem. Relative paths are taken
// from the notes directory and may not leave it; absolute paths are used as
// they are.
func (s *OSNoteStore) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("note body path escapes notes directory: %s", path)
	}
	return filepath.Join(s.dir, path), nil
}

// Write stores a new body file. It fails if the file already exists.
func (s *OSNoteStore) Write(noteID string, body []byte) (string, error) {
	rel := s.PathFor(noteID)
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err == nil {
		return "", fmt.Errorf("note body already exists: %s", full)
	}
	if err := writeAtomic(full, body); err != nil {
		return "", err
	}
	return rel, nil
}

// Overwrite replaces the body file at path. The file must already exist.
func (s *OSNoteStore) Overwrite(path string, body []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(full); err != nil {
		return fmt.Errorf("stat note body: %w", err)
	}
	return writeAtomic(full, body)
}

// Read returns the body file at path.
func (s *OSNoteStore) Read(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading note body: %w", err)
	}
	return data, nil
}

// Remove deletes the body file at path.
func (s *OSNoteStore) Remove(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("removing note body: %w", err)
	}
	return nil
}

// writeAtomic writes data to destPath via a temp file in the same directory
// and a rename, so readers never see a partial body.
func writeAtomic(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that OSNoteStore implements nt.NoteStore interface
var _ nt.NoteStore = (*OSNoteStore)(nil)
