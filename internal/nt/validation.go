package nt

import "notetree/internal/database/sqlc"

// Validator runs the read-only checks that gate tree mutations.
// Checks run outside the mutating transaction, so a concurrent writer can
// invalidate them before the mutation lands.
type Validator struct {
	db Database
}

func NewValidator(db Database) *Validator {
	return &Validator{db: db}
}

// RequireNode returns the node or a NotFound error.
func (v *Validator) RequireNode(op, nodeID string) (*sqlc.TreeNode, error) {
	node, err := v.db.FindTreeNode(nodeID)
	if err != nil {
		return nil, storageFailure(op, err)
	}
	if node == nil {
		return nil, notFound(op, "node", nodeID)
	}
	return node, nil
}

// RequireParent checks that parentID, when given, names an existing node.
func (v *Validator) RequireParent(op string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	parent, err := v.db.FindTreeNode(*parentID)
	if err != nil {
		return storageFailure(op, err)
	}
	if parent == nil {
		return notFound(op, "parent", *parentID)
	}
	return nil
}

// RejectSelfParent fails when a node would become its own parent.
func (v *Validator) RejectSelfParent(op, nodeID string, parentID *string) error {
	if parentID != nil && *parentID == nodeID {
		return &Error{
			Kind:   KindInvalidReference,
			Op:     op,
			ID:     nodeID,
			Reason: "parent cannot be the node itself",
		}
	}
	return nil
}

// RejectDescendantParent fails when parentID lies below nodeID. The walk up
// from parentID stops at a root, at a dangling reference or when it revisits
// a node, so an already-cyclic chain cannot loop forever.
func (v *Validator) RejectDescendantParent(op, nodeID string, parentID *string) error {
	if parentID == nil {
		return nil
	}

	seen := make(map[string]bool)
	cur := *parentID
	for cur != "" && !seen[cur] {
		if cur == nodeID {
			return &Error{
				Kind:   KindInvalidReference,
				Op:     op,
				ID:     nodeID,
				Reason: "parent " + *parentID + " is a descendant of the node",
			}
		}
		seen[cur] = true

		node, err := v.db.FindTreeNode(cur)
		if err != nil {
			return storageFailure(op, err)
		}
		if node == nil || !node.ParentID.Valid {
			return nil
		}
		cur = node.ParentID.String
	}
	return nil
}

// RequireEmpty fails when the node still has children or bound resources.
// Children are checked first.
func (v *Validator) RequireEmpty(op, nodeID string) error {
	children, err := v.db.CountChildren(nodeID)
	if err != nil {
		return storageFailure(op, err)
	}
	if children > 0 {
		return &Error{Kind: KindNonEmptyNode, Op: op, ID: nodeID, Reason: ReasonHasChildren}
	}

	bindings, err := v.db.CountBindings(nodeID)
	if err != nil {
		return storageFailure(op, err)
	}
	if bindings > 0 {
		return &Error{Kind: KindNonEmptyNode, Op: op, ID: nodeID, Reason: ReasonHasBoundResources}
	}
	return nil
}
