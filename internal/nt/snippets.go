package nt

import "notetree/internal/database/sqlc"

// SnippetManager stores snippets inline in the database, so every operation
// is a single transaction and nothing needs compensating.
type SnippetManager struct {
	db        Database
	validator *Validator
	bindings  *Bindings
	clock     Clock
	idgen     IDGenerator
	logger    Logger
}

func NewSnippetManager(db Database, clock Clock, idgen IDGenerator, logger Logger) *SnippetManager {
	return &SnippetManager{
		db:        db,
		validator: NewValidator(db),
		bindings:  NewBindings(db),
		clock:     clock,
		idgen:     idgen,
		logger:    logger,
	}
}

// Create inserts the snippet, its node in the snippets scope and the binding.
func (m *SnippetManager) Create(title string, language *string, content string, parentID *string) (string, error) {
	const op = "create_snippet"

	parentID = normalizeParent(parentID)
	if err := m.validator.RequireParent(op, parentID); err != nil {
		return "", err
	}

	snippetID := m.idgen.New()
	nodeID := m.idgen.New()
	now := m.clock.Now()

	err := m.db.InTx(func(tx Tx) error {
		if err := insertNode(tx, nodeID, CreateNodeParams{
			ParentID: parentID,
			Name:     title,
			Kind:     KindSnippet,
			Scope:    ScopeSnippets,
		}, now); err != nil {
			return err
		}
		if err := tx.InsertSnippet(sqlc.InsertSnippetParams{
			ID:        snippetID,
			Title:     title,
			Language:  nullString(language),
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		return m.bindings.Bind(tx, nodeID, snippetID, ResourceSnippet, now)
	})
	if err != nil {
		return "", storageFailure(op, err)
	}

	m.logger.Info("snippet created", "id", snippetID, "node", nodeID)
	return snippetID, nil
}

// Get returns the snippet and the node displaying it, if any.
func (m *SnippetManager) Get(snippetID string) (*SnippetDetail, error) {
	s, err := m.requireSnippet("get_snippet_detail", snippetID)
	if err != nil {
		return nil, err
	}
	nodeID, _, err := m.bindings.FindNodeForResource(snippetID, ResourceSnippet)
	if err != nil {
		return nil, err
	}
	return &SnippetDetail{
		ID:        s.ID,
		Title:     s.Title,
		Language:  stringPtr(s.Language),
		Content:   s.Content,
		NodeID:    nodeID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

// Update replaces title, language and content. Bound nodes follow the new title.
func (m *SnippetManager) Update(snippetID, title string, language *string, content string) error {
	const op = "update_snippet_detail"

	if _, err := m.requireSnippet(op, snippetID); err != nil {
		return err
	}

	now := m.clock.Now()
	err := m.db.InTx(func(tx Tx) error {
		n, err := tx.UpdateSnippet(sqlc.UpdateSnippetParams{
			Title:     title,
			Language:  nullString(language),
			Content:   content,
			UpdatedAt: now,
			ID:        snippetID,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound(op, "snippet", snippetID)
		}
		_, err = tx.RenameNodesForResource(snippetID, ResourceSnippet, title, now)
		return err
	})
	if err != nil {
		return storageFailure(op, err)
	}

	m.logger.Info("snippet updated", "id", snippetID)
	return nil
}

// Delete removes the snippet's bindings and then the snippet. Its node stays
// behind, unbound, for TreeStore.Delete.
func (m *SnippetManager) Delete(snippetID string) error {
	const op = "delete_snippet_only"

	err := m.db.InTx(func(tx Tx) error {
		if _, err := m.bindings.UnbindResource(tx, snippetID, ResourceSnippet); err != nil {
			return err
		}
		n, err := tx.DeleteSnippet(snippetID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound(op, "snippet", snippetID)
		}
		return nil
	})
	if err != nil {
		return storageFailure(op, err)
	}

	m.logger.Info("snippet deleted", "id", snippetID)
	return nil
}

func (m *SnippetManager) requireSnippet(op, snippetID string) (*sqlc.Snippet, error) {
	s, err := m.db.FindSnippet(snippetID)
	if err != nil {
		return nil, storageFailure(op, err)
	}
	if s == nil {
		return nil, notFound(op, "snippet", snippetID)
	}
	return s, nil
}
