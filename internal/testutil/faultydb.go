package testutil

import (
	"sync"
	"time"

	"notetree/internal/database/sqlc"
	"notetree/internal/nt"
)

// Operation names accepted by FaultyDatabase.FailOn.
const (
	OpFindTreeNode   = "FindTreeNode"
	OpListTreeNodes  = "ListTreeNodes"
	OpFindNote       = "FindNote"
	OpFindBinding    = "FindBindingForResource"
	OpInsertTreeNode = "InsertTreeNode"
	OpUpdateTreeNode = "UpdateTreeNode"
	OpDeleteTreeNode = "DeleteTreeNode"
	OpRenameNodes    = "RenameNodesForResource"
	OpInsertBinding  = "InsertBinding"
	OpDeleteBindings = "DeleteBindingsForResource"
	OpInsertNote     = "InsertNote"
	OpUpdateNote     = "UpdateNoteTitle"
	OpTouchNote      = "TouchNote"
	OpDeleteNote     = "DeleteNote"
	OpInsertSnippet  = "InsertSnippet"
	OpUpdateSnippet  = "UpdateSnippet"
	OpDeleteSnippet  = "DeleteSnippet"
	// OpCommit fails after the transaction body succeeded, so every
	// statement of the transaction is rolled back.
	OpCommit = "Commit"
)

// FaultyDatabase wraps a real nt.Database and makes chosen operations fail.
type FaultyDatabase struct {
	nt.Database

	mu    sync.Mutex
	fails map[string]error
}

func NewFaultyDatabase(db nt.Database) *FaultyDatabase {
	return &FaultyDatabase{Database: db, fails: make(map[string]error)}
}

// FailOn makes op return err until Reset is called.
func (f *FaultyDatabase) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails[op] = err
}

// Reset clears every injected failure.
func (f *FaultyDatabase) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails = make(map[string]error)
}

func (f *FaultyDatabase) fail(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fails[op]
}

func (f *FaultyDatabase) FindTreeNode(id string) (*sqlc.TreeNode, error) {
	if err := f.fail(OpFindTreeNode); err != nil {
		return nil, err
	}
	return f.Database.FindTreeNode(id)
}

func (f *FaultyDatabase) ListTreeNodes(scope string) ([]*sqlc.TreeNode, error) {
	if err := f.fail(OpListTreeNodes); err != nil {
		return nil, err
	}
	return f.Database.ListTreeNodes(scope)
}

func (f *FaultyDatabase) FindNote(id string) (*sqlc.Note, error) {
	if err := f.fail(OpFindNote); err != nil {
		return nil, err
	}
	return f.Database.FindNote(id)
}

func (f *FaultyDatabase) FindBindingForResource(resourceID, resourceType string) (*sqlc.NodeResource, error) {
	if err := f.fail(OpFindBinding); err != nil {
		return nil, err
	}
	return f.Database.FindBindingForResource(resourceID, resourceType)
}

func (f *FaultyDatabase) InTx(fn func(tx nt.Tx) error) error {
	return f.Database.InTx(func(tx nt.Tx) error {
		if err := fn(&faultyTx{Tx: tx, db: f}); err != nil {
			return err
		}
		return f.fail(OpCommit)
	})
}

// faultyTx fails individual statements before they reach the real transaction.
type faultyTx struct {
	nt.Tx
	db *FaultyDatabase
}

func (t *faultyTx) InsertTreeNode(arg sqlc.InsertTreeNodeParams) error {
	if err := t.db.fail(OpInsertTreeNode); err != nil {
		return err
	}
	return t.Tx.InsertTreeNode(arg)
}

func (t *faultyTx) UpdateTreeNode(arg sqlc.UpdateTreeNodeParams) (int64, error) {
	if err := t.db.fail(OpUpdateTreeNode); err != nil {
		return 0, err
	}
	return t.Tx.UpdateTreeNode(arg)
}

func (t *faultyTx) DeleteTreeNode(id string) (int64, error) {
	if err := t.db.fail(OpDeleteTreeNode); err != nil {
		return 0, err
	}
	return t.Tx.DeleteTreeNode(id)
}

func (t *faultyTx) RenameNodesForResource(resourceID, resourceType, name string, now time.Time) (int64, error) {
	if err := t.db.fail(OpRenameNodes); err != nil {
		return 0, err
	}
	return t.Tx.RenameNodesForResource(resourceID, resourceType, name, now)
}

func (t *faultyTx) InsertBinding(arg sqlc.InsertNodeResourceParams) error {
	if err := t.db.fail(OpInsertBinding); err != nil {
		return err
	}
	return t.Tx.InsertBinding(arg)
}

func (t *faultyTx) DeleteBindingsForResource(resourceID, resourceType string) (int64, error) {
	if err := t.db.fail(OpDeleteBindings); err != nil {
		return 0, err
	}
	return t.Tx.DeleteBindingsForResource(resourceID, resourceType)
}

func (t *faultyTx) InsertNote(arg sqlc.InsertNoteParams) error {
	if err := t.db.fail(OpInsertNote); err != nil {
		return err
	}
	return t.Tx.InsertNote(arg)
}

func (t *faultyTx) UpdateNoteTitle(id, title string, now time.Time) (int64, error) {
	if err := t.db.fail(OpUpdateNote); err != nil {
		return 0, err
	}
	return t.Tx.UpdateNoteTitle(id, title, now)
}

func (t *faultyTx) TouchNote(id string, now time.Time) (int64, error) {
	if err := t.db.fail(OpTouchNote); err != nil {
		return 0, err
	}
	return t.Tx.TouchNote(id, now)
}

func (t *faultyTx) DeleteNote(id string) (int64, error) {
	if err := t.db.fail(OpDeleteNote); err != nil {
		return 0, err
	}
	return t.Tx.DeleteNote(id)
}

func (t *faultyTx) InsertSnippet(arg sqlc.InsertSnippetParams) error {
	if err := t.db.fail(OpInsertSnippet); err != nil {
		return err
	}
	return t.Tx.InsertSnippet(arg)
}

func (t *faultyTx) UpdateSnippet(arg sqlc.UpdateSnippetParams) (int64, error) {
	if err := t.db.fail(OpUpdateSnippet); err != nil {
		return 0, err
	}
	return t.Tx.UpdateSnippet(arg)
}

func (t *faultyTx) DeleteSnippet(id string) (int64, error) {
	if err := t.db.fail(OpDeleteSnippet); err != nil {
		return 0, err
	}
	return t.Tx.DeleteSnippet(id)
}

// Compile-time check
var _ nt.Database = (*FaultyDatabase)(nil)
