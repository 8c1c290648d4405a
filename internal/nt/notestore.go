package nt

// NoteStore keeps note bodies outside the relational store.
// It abstracts file access to enable testing without touching the real filesystem.
type NoteStore interface {
	// Write stores body as the note's file and returns the path to record for
	// it. The path is relative to the store's root so the database stays valid
	// when the store is moved. The write is atomic: on error no file is left
	// behind.
	Write(noteID string, body []byte) (string, error)

	// Overwrite replaces the contents of an existing body file at path.
	Overwrite(path string, body []byte) error

	// Read returns the contents of the body file at path. A missing file
	// yields an error satisfying errors.Is(err, fs.ErrNotExist).
	Read(path string) ([]byte, error)

	// Remove deletes the body file at path.
	Remove(path string) error
}
