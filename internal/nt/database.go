package nt

import (
	"time"

	"notetree/internal/database/sqlc"
)

// Database provides read access to the relational store and a unit of work
// for mutations. Find* methods return nil, nil when the row does not exist.
type Database interface {
	// Tree nodes

	// FindTreeNode returns the node with the given id.
	FindTreeNode(id string) (*sqlc.TreeNode, error)

	// CountChildren returns the number of nodes whose parent is nodeID.
	CountChildren(nodeID string) (int64, error)

	// ListTreeNodes returns nodes ordered by (parent_id, order_index, insertion).
	// An empty scope lists every scope.
	ListTreeNodes(scope string) ([]*sqlc.TreeNode, error)

	// Bindings

	// CountBindings returns the number of resources bound to nodeID.
	CountBindings(nodeID string) (int64, error)

	// FindBindingForResource returns the oldest binding of a resource.
	FindBindingForResource(resourceID, resourceType string) (*sqlc.NodeResource, error)

	// ListBindings returns the bindings of nodes in scope (all scopes if empty).
	ListBindings(scope string) ([]*sqlc.NodeResource, error)

	// Resources

	FindNote(id string) (*sqlc.Note, error)
	ListNotes() ([]*sqlc.Note, error)
	FindSnippet(id string) (*sqlc.Snippet, error)

	// InTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	InTx(fn func(tx Tx) error) error

	// BackupTo writes a consistent copy of the database to destPath.
	BackupTo(destPath string) error

	// Close closes the database connection.
	Close() error
}

// Tx is the set of mutations available inside Database.InTx.
// Methods returning int64 report the number of rows affected.
type Tx interface {
	InsertTreeNode(arg sqlc.InsertTreeNodeParams) error
	UpdateTreeNode(arg sqlc.UpdateTreeNodeParams) (int64, error)
	DeleteTreeNode(id string) (int64, error)
	RenameNodesForResource(resourceID, resourceType, name string, now time.Time) (int64, error)

	InsertBinding(arg sqlc.InsertNodeResourceParams) error
	DeleteBindingsForResource(resourceID, resourceType string) (int64, error)

	InsertNote(arg sqlc.InsertNoteParams) error
	UpdateNoteTitle(id, title string, now time.Time) (int64, error)
	TouchNote(id string, now time.Time) (int64, error)
	DeleteNote(id string) (int64, error)

	InsertSnippet(arg sqlc.InsertSnippetParams) error
	UpdateSnippet(arg sqlc.UpdateSnippetParams) (int64, error)
	DeleteSnippet(id string) (int64, error)
}
