package nt

import (
	"errors"
	"io/fs"

	"notetree/internal/database/sqlc"
)

// NoteManager keeps note rows, note body files, tree nodes and bindings
// consistent. Bodies live in the NoteStore; the database only records their
// path.
type NoteManager struct {
	db        Database
	store     NoteStore
	validator *Validator
	bindings  *Bindings
	clock     Clock
	idgen     IDGenerator
	logger    Logger
}

// NewNoteManager creates a NoteManager.
func NewNoteManager(db Database, store NoteStore, clock Clock, idgen IDGenerator, logger Logger) *NoteManager {
	return &NoteManager{
		db:        db,
		store:     store,
		validator: NewValidator(db),
		bindings:  NewBindings(db),
		clock:     clock,
		idgen:     idgen,
		logger:    logger,
	}
}

// seedBody is the body written for a freshly created note.
func seedBody(title string) []byte {
	return []byte("# " + title + "\n\n")
}

// Create writes the body file, then the node, note row and binding in one
// transaction. Either all four exist afterwards or none do.
func (m *NoteManager) Create(title string, parentID *string) (string, error) {
	const op = "create_note"

	parentID = normalizeParent(parentID)
	if err := m.validator.RequireParent(op, parentID); err != nil {
		return "", err
	}

	noteID := m.idgen.New()
	nodeID := m.idgen.New()
	now := m.clock.Now()

	var path string
	saga := NewSaga(op, m.logger).
		Step("write-body",
			func() error {
				p, err := m.store.Write(noteID, seedBody(title))
				if err != nil {
					return filesystemFailure(op, noteID, err)
				}
				path = p
				return nil
			},
			func() error {
				return m.store.Remove(path)
			}).
		Step("record-note",
			func() error {
				err := m.db.InTx(func(tx Tx) error {
					if err := insertNode(tx, nodeID, CreateNodeParams{
						ParentID: parentID,
						Name:     title,
						Kind:     KindNote,
						Scope:    ScopeNotes,
					}, now); err != nil {
						return err
					}
					if err := tx.InsertNote(sqlc.InsertNoteParams{
						ID:          noteID,
						Title:       title,
						ContentPath: path,
						CreatedAt:   now,
						UpdatedAt:   now,
					}); err != nil {
						return err
					}
					return m.bindings.Bind(tx, nodeID, noteID, ResourceNote, now)
				})
				if err != nil {
					return storageFailure(op, err)
				}
				return nil
			},
			nil)

	if err := saga.Execute(); err != nil {
		return "", err
	}

	m.logger.Info("note created", "id", noteID, "node", nodeID)
	return noteID, nil
}

// Get returns the note with its body read live from the note store and the
// node displaying it, if any.
func (m *NoteManager) Get(noteID string) (*NoteDetail, error) {
	const op = "get_note"

	note, err := m.requireNote(op, noteID)
	if err != nil {
		return nil, err
	}

	body, err := m.store.Read(note.ContentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindNotFound, Op: op, Entity: "note", ID: noteID, Err: err}
		}
		return nil, filesystemFailure(op, noteID, err)
	}

	nodeID, _, err := m.bindings.FindNodeForResource(noteID, ResourceNote)
	if err != nil {
		return nil, err
	}

	return &NoteDetail{
		ID:        note.ID,
		Title:     note.Title,
		Body:      string(body),
		NodeID:    nodeID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

// List returns every note row ordered by creation.
func (m *NoteManager) List() ([]*sqlc.Note, error) {
	notes, err := m.db.ListNotes()
	if err != nil {
		return nil, storageFailure("list_notes", err)
	}
	return notes, nil
}

// Rename sets the note title and the name of every node bound to the note in
// one transaction. A note with no bound node is still renamed.
func (m *NoteManager) Rename(noteID, title string) error {
	const op = "update_note_title"

	now := m.clock.Now()
	var renamed int64
	err := m.db.InTx(func(tx Tx) error {
		n, err := tx.UpdateNoteTitle(noteID, title, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound(op, "note", noteID)
		}
		renamed, err = tx.RenameNodesForResource(noteID, ResourceNote, title, now)
		return err
	})
	if err != nil {
		return storageFailure(op, err)
	}

	m.logger.Info("note renamed", "id", noteID, "nodes", renamed)
	return nil
}

// UpdateBody overwrites the body file and then bumps updated_at. The two
// writes are not atomic: if the timestamp update fails the new body stays on
// disk with the old timestamp.
func (m *NoteManager) UpdateBody(noteID, content string) error {
	const op = "update_note_content"

	note, err := m.requireNote(op, noteID)
	if err != nil {
		return err
	}

	if err := m.store.Overwrite(note.ContentPath, []byte(content)); err != nil {
		return filesystemFailure(op, noteID, err)
	}

	now := m.clock.Now()
	err = m.db.InTx(func(tx Tx) error {
		n, err := tx.TouchNote(noteID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound(op, "note", noteID)
		}
		return nil
	})
	if err != nil {
		m.logger.Warn("note body written but timestamp not updated", "id", noteID, "error", err)
		return storageFailure(op, err)
	}

	m.logger.Debug("note body updated", "id", noteID, "bytes", len(content))
	return nil
}

// Delete removes the note's bindings and row, then its body file. The node
// that displayed the note is left for TreeStore.Delete.
func (m *NoteManager) Delete(noteID string) error {
	const op = "delete_note"

	note, err := m.requireNote(op, noteID)
	if err != nil {
		return err
	}

	err = m.db.InTx(func(tx Tx) error {
		if _, err := m.bindings.UnbindResource(tx, noteID, ResourceNote); err != nil {
			return err
		}
		n, err := tx.DeleteNote(noteID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound(op, "note", noteID)
		}
		return nil
	})
	if err != nil {
		return storageFailure(op, err)
	}

	if err := m.store.Remove(note.ContentPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("removing note body failed", "id", noteID, "path", note.ContentPath, "error", err)
	}

	m.logger.Info("note deleted", "id", noteID)
	return nil
}

func (m *NoteManager) requireNote(op, noteID string) (*sqlc.Note, error) {
	note, err := m.db.FindNote(noteID)
	if err != nil {
		return nil, storageFailure(op, err)
	}
	if note == nil {
		return nil, notFound(op, "note", noteID)
	}
	return note, nil
}
