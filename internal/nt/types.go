package nt

import "time"

// Scopes partition the tree into independent forests.
const (
	ScopeNotes    = "notes"
	ScopeSnippets = "snippets"
)

// Resource types carried by bindings.
const (
	ResourceNote    = "note"
	ResourceSnippet = "snippet"
)

// Node kinds. Callers may use any tag; these are the ones nt itself writes.
const (
	KindFolder  = "folder"
	KindNote    = "note"
	KindSnippet = "snippet"
)

// ValidScope reports whether scope is one of the known scopes.
func ValidScope(scope string) bool {
	return scope == ScopeNotes || scope == ScopeSnippets
}

// CreateNodeParams describes a new tree node. A nil ParentID creates a root;
// a nil OrderIndex means 0.
type CreateNodeParams struct {
	ParentID   *string
	Name       string
	Kind       string
	Scope      string
	OrderIndex *int64
}

// UpdateNodeParams replaces a node's name, parent and position.
// A nil ParentID moves the node to the root of its scope; a nil OrderIndex means 0.
type UpdateNodeParams struct {
	Name       string
	ParentID   *string
	OrderIndex *int64
}

// NoteDetail is a note with its body read from the note store.
type NoteDetail struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	NodeID    string    `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// SnippetDetail is a snippet row with an optional language.
type SnippetDetail struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Language  *string   `json:"language,omitempty" yaml:"language,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	NodeID    string    `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// normalizeParent treats an empty parent id like an absent one.
func normalizeParent(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}

func orderOrZero(order *int64) int64 {
	if order == nil {
		return 0
	}
	return *order
}
