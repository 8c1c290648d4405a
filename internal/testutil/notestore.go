package testutil

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"notetree/internal/nt"
)

// MemoryNoteStore is an in-memory nt.NoteStore. Setting one of the Fail*
// fields makes the matching operation return that error without side effects.
type MemoryNoteStore struct {
	FailWrite     error
	FailOverwrite error
	FailRead      error
	FailRemove    error

	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryNoteStore() *MemoryNoteStore {
	return &MemoryNoteStore{files: make(map[string][]byte)}
}

// PathFor returns the path Write uses for noteID.
func (s *MemoryNoteStore) PathFor(noteID string) string {
	return noteID + ".md"
}

func (s *MemoryNoteStore) Write(noteID string, body []byte) (string, error) {
	if s.FailWrite != nil {
		return "", s.FailWrite
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.PathFor(noteID)
	if _, ok := s.files[path]; ok {
		return "", fmt.Errorf("note body already exists: %s", path)
	}
	s.files[path] = append([]byte(nil), body...)
	return path, nil
}

func (s *MemoryNoteStore) Overwrite(path string, body []byte) error {
	if s.FailOverwrite != nil {
		return s.FailOverwrite
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("overwrite %s: %w", path, fs.ErrNotExist)
	}
	s.files[path] = append([]byte(nil), body...)
	return nil
}

func (s *MemoryNoteStore) Read(path string) ([]byte, error) {
	if s.FailRead != nil {
		return nil, s.FailRead
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryNoteStore) Remove(path string) error {
	if s.FailRemove != nil {
		return s.FailRemove
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("remove %s: %w", path, fs.ErrNotExist)
	}
	delete(s.files, path)
	return nil
}

// Exists reports whether a body is stored at path.
func (s *MemoryNoteStore) Exists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok
}

// Paths returns every stored path, sorted.
func (s *MemoryNoteStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Compile-time check
var _ nt.NoteStore = (*MemoryNoteStore)(nil)
