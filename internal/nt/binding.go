package nt

import (
	"time"

	"notetree/internal/database/sqlc"
)

// Bindings manages node_resources rows. It does not stop a node from being
// bound twice; callers create exactly one binding per node.
type Bindings struct {
	db Database
}

func NewBindings(db Database) *Bindings {
	return &Bindings{db: db}
}

// Bind records that nodeID displays the given resource.
func (b *Bindings) Bind(tx Tx, nodeID, resourceID, resourceType string, now time.Time) error {
	return tx.InsertBinding(sqlc.InsertNodeResourceParams{
		NodeID:       nodeID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		CreatedAt:    now,
	})
}

// UnbindResource removes every binding of the resource and reports how many
// rows went away. The nodes themselves are left in place.
func (b *Bindings) UnbindResource(tx Tx, resourceID, resourceType string) (int64, error) {
	return tx.DeleteBindingsForResource(resourceID, resourceType)
}

// FindNodeForResource returns the node displaying the resource, if any.
func (b *Bindings) FindNodeForResource(resourceID, resourceType string) (string, bool, error) {
	binding, err := b.db.FindBindingForResource(resourceID, resourceType)
	if err != nil {
		return "", false, storageFailure("find_node_for_resource", err)
	}
	if binding == nil {
		return "", false, nil
	}
	return binding.NodeID, true, nil
}

// ListForScope returns the bindings of nodes in scope, or all of them when
// scope is empty.
func (b *Bindings) ListForScope(scope string) ([]*sqlc.NodeResource, error) {
	bindings, err := b.db.ListBindings(scope)
	if err != nil {
		return nil, storageFailure("list_bindings", err)
	}
	return bindings, nil
}
