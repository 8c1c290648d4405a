package nt

import (
	"database/sql"
	"fmt"
	"time"

	"notetree/internal/database/sqlc"
)

// TreeStore owns tree_nodes rows. It knows nothing about what a node displays.
type TreeStore struct {
	db        Database
	validator *Validator
	clock     Clock
	idgen     IDGenerator
	logger    Logger
}

// NewTreeStore creates a TreeStore over db.
func NewTreeStore(db Database, clock Clock, idgen IDGenerator, logger Logger) *TreeStore {
	return &TreeStore{
		db:        db,
		validator: NewValidator(db),
		clock:     clock,
		idgen:     idgen,
		logger:    logger,
	}
}

// Create inserts a node and returns its id. The parent, if any, must exist.
func (s *TreeStore) Create(p CreateNodeParams) (string, error) {
	const op = "create_tree_node"

	p.ParentID = normalizeParent(p.ParentID)
	if !ValidScope(p.Scope) {
		return "", &Error{Kind: KindInvalidReference, Op: op, Reason: fmt.Sprintf("unknown scope %q", p.Scope)}
	}
	if err := s.validator.RequireParent(op, p.ParentID); err != nil {
		return "", err
	}

	id := s.idgen.New()
	now := s.clock.Now()
	err := s.db.InTx(func(tx Tx) error {
		return insertNode(tx, id, p, now)
	})
	if err != nil {
		return "", storageFailure(op, err)
	}

	s.logger.Info("tree node created", "id", id, "scope", p.Scope, "kind", p.Kind)
	return id, nil
}

// Update renames, reparents and reorders a node. A nil parent moves the node
// to the root; a parent below the node is rejected.
func (s *TreeStore) Update(nodeID string, p UpdateNodeParams) error {
	const op = "update_tree_node"

	p.ParentID = normalizeParent(p.ParentID)
	if _, err := s.validator.RequireNode(op, nodeID); err != nil {
		return err
	}
	if err := s.validator.RejectSelfParent(op, nodeID, p.ParentID); err != nil {
		return err
	}
	if err := s.validator.RequireParent(op, p.ParentID); err != nil {
		return err
	}
	if err := s.validator.RejectDescendantParent(op, nodeID, p.ParentID); err != nil {
		return err
	}

	now := s.clock.Now()
	var affected int64
	err := s.db.InTx(func(tx Tx) error {
		var err error
		affected, err = tx.UpdateTreeNode(sqlc.UpdateTreeNodeParams{
			Name:       p.Name,
			ParentID:   nullString(p.ParentID),
			OrderIndex: orderOrZero(p.OrderIndex),
			UpdatedAt:  now,
			ID:         nodeID,
		})
		return err
	})
	if err != nil {
		return storageFailure(op, err)
	}
	if affected == 0 {
		// Deleted between the check and the update.
		return notFound(op, "node", nodeID)
	}

	s.logger.Info("tree node updated", "id", nodeID)
	return nil
}

// Delete removes a node that has no children and no bound resources.
func (s *TreeStore) Delete(nodeID string) error {
	const op = "delete_tree_node"

	if err := s.validator.RequireEmpty(op, nodeID); err != nil {
		return err
	}

	var affected int64
	err := s.db.InTx(func(tx Tx) error {
		var err error
		affected, err = tx.DeleteTreeNode(nodeID)
		return err
	})
	if err != nil {
		return storageFailure(op, err)
	}
	if affected == 0 {
		return notFound(op, "node", nodeID)
	}

	s.logger.Info("tree node deleted", "id", nodeID)
	return nil
}

// List returns the nodes of scope (every scope when empty) ordered by
// parent id and then order index.
func (s *TreeStore) List(scope string) ([]*sqlc.TreeNode, error) {
	nodes, err := s.db.ListTreeNodes(scope)
	if err != nil {
		return nil, storageFailure("list_tree_nodes", err)
	}
	return nodes, nil
}

// insertNode writes one tree_nodes row inside tx with both timestamps set to now.
func insertNode(tx Tx, id string, p CreateNodeParams, now time.Time) error {
	return tx.InsertTreeNode(sqlc.InsertTreeNodeParams{
		ID:         id,
		ParentID:   nullString(normalizeParent(p.ParentID)),
		Name:       p.Name,
		NodeType:   p.Kind,
		Scope:      p.Scope,
		OrderIndex: orderOrZero(p.OrderIndex),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
