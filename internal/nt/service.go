package nt

import (
	"fmt"

	"notetree/internal/database/sqlc"
)

// NTService exposes the command set used by the CLI. It owns no state of its
// own; each method delegates to the component responsible for it.
type NTService struct {
	tree      *TreeStore
	bindings  *Bindings
	notes     *NoteManager
	snippets  *SnippetManager
	snapshots *Snapshots
	logger    Logger
}

// NewNTService creates a new NTService with the provided dependencies.
// vault and encryptor may be nil, in which case snapshot operations fail.
func NewNTService(database Database, store NoteStore, vault Vault, encryptor Encryptor, logger Logger, clock Clock, idgen IDGenerator) *NTService {
	s := &NTService{
		tree:     NewTreeStore(database, clock, idgen, logger),
		bindings: NewBindings(database),
		notes:    NewNoteManager(database, store, clock, idgen, logger),
		snippets: NewSnippetManager(database, clock, idgen, logger),
		logger:   logger,
	}
	if vault != nil && encryptor != nil {
		s.snapshots = NewSnapshots(database, store, vault, encryptor, clock, logger)
	}
	return s
}

// Tree nodes

func (s *NTService) CreateTreeNode(p CreateNodeParams) (string, error) {
	return s.tree.Create(p)
}

func (s *NTService) UpdateTreeNode(nodeID string, p UpdateNodeParams) error {
	return s.tree.Update(nodeID, p)
}

func (s *NTService) DeleteTreeNode(nodeID string) error {
	return s.tree.Delete(nodeID)
}

// ListTreeNodes returns the flat, ordered node list of scope.
func (s *NTService) ListTreeNodes(scope string) ([]*sqlc.TreeNode, error) {
	return s.tree.List(scope)
}

// ListTreeNodesTree returns the nested roots of scope, annotated with the
// resource each node displays.
func (s *NTService) ListTreeNodesTree(scope string) ([]*TreeView, error) {
	nodes, err := s.tree.List(scope)
	if err != nil {
		return nil, err
	}
	bindings, err := s.bindings.ListForScope(scope)
	if err != nil {
		return nil, err
	}
	return Materialize(nodes, bindings), nil
}

// Notes

func (s *NTService) CreateNote(title string, parentID *string) (string, error) {
	return s.notes.Create(title, parentID)
}

func (s *NTService) GetNote(noteID string) (*NoteDetail, error) {
	return s.notes.Get(noteID)
}

func (s *NTService) ListNotes() ([]*sqlc.Note, error) {
	return s.notes.List()
}

func (s *NTService) UpdateNoteTitle(noteID, title string) error {
	return s.notes.Rename(noteID, title)
}

func (s *NTService) UpdateNoteContent(noteID, content string) error {
	return s.notes.UpdateBody(noteID, content)
}

func (s *NTService) DeleteNote(noteID string) error {
	return s.notes.Delete(noteID)
}

// Snippets

func (s *NTService) CreateSnippet(title string, language *string, content string, parentID *string) (string, error) {
	return s.snippets.Create(title, language, content, parentID)
}

func (s *NTService) GetSnippetDetail(snippetID string) (*SnippetDetail, error) {
	return s.snippets.Get(snippetID)
}

func (s *NTService) UpdateSnippetDetail(snippetID, title string, language *string, content string) error {
	return s.snippets.Update(snippetID, title, language, content)
}

func (s *NTService) DeleteSnippetOnly(snippetID string) error {
	return s.snippets.Delete(snippetID)
}

// Snapshots

func (s *NTService) Backup() (string, error) {
	if s.snapshots == nil {
		return "", fmt.Errorf("snapshots are not configured")
	}
	return s.snapshots.Backup()
}

func (s *NTService) ListSnapshots() ([]string, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshots are not configured")
	}
	return s.snapshots.List()
}

func (s *NTService) Restore(name string, decryptCtx DecryptionContext, destDir string) ([]string, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshots are not configured")
	}
	return s.snapshots.Restore(name, decryptCtx, destDir)
}
