package nt

import (
	"sort"

	"notetree/internal/database/sqlc"
)

// TreeView is one node of a materialized tree. Children is nil for leaves.
type TreeView struct {
	ID           string      `json:"id" yaml:"id"`
	Label        string      `json:"label" yaml:"label"`
	Kind         string      `json:"kind" yaml:"kind"`
	ResourceID   string      `json:"resource_id,omitempty" yaml:"resource_id,omitempty"`
	ResourceType string      `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
	Children     []*TreeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// arenaNode is a snapshot row addressed by its index in the arena.
type arenaNode struct {
	row      *sqlc.TreeNode
	parent   int // -1 when the parent is null or outside the snapshot
	children []int
	view     *TreeView
}

// frame is a position in the explicit descent stack.
type frame struct {
	idx  int
	next int // next child to visit
}

// Materialize nests a flat snapshot of tree nodes. Siblings are ordered by
// order index, ties keeping snapshot order. Every node in the snapshot is
// emitted exactly once, even when parent links are dangling or cyclic:
// a child already on the current path is not expanded again, and nodes that
// no root reaches are hoisted to the top level.
func Materialize(nodes []*sqlc.TreeNode, bindings []*sqlc.NodeResource) []*TreeView {
	arena := make([]arenaNode, 0, len(nodes))
	index := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if _, dup := index[n.ID]; dup {
			continue
		}
		index[n.ID] = len(arena)
		arena = append(arena, arenaNode{row: n, parent: -1})
	}

	bound := make(map[string]*sqlc.NodeResource, len(bindings))
	for _, b := range bindings {
		if _, ok := bound[b.NodeID]; !ok {
			bound[b.NodeID] = b
		}
	}

	for i := range arena {
		row := arena[i].row
		if !row.ParentID.Valid {
			continue
		}
		if p, ok := index[row.ParentID.String]; ok {
			arena[i].parent = p
			arena[p].children = append(arena[p].children, i)
		}
	}
	for i := range arena {
		sortByOrder(arena, arena[i].children)
	}

	var roots []int
	for i := range arena {
		if !arena[i].row.ParentID.Valid {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		for i := range arena {
			if arena[i].parent == -1 {
				roots = append(roots, i)
			}
		}
	}
	sortByOrder(arena, roots)

	onPath := make(map[int]bool)
	var out []*TreeView
	for _, r := range roots {
		out = append(out, descend(arena, r, onPath))
	}

	// Anything still unreached hangs off a cycle or a dangling parent.
	for i := range arena {
		if arena[i].view != nil {
			continue
		}
		top := topOfChain(arena, i)
		out = append(out, descend(arena, top, onPath))
	}

	for i := range arena {
		if b, ok := bound[arena[i].row.ID]; ok {
			arena[i].view.ResourceID = b.ResourceID
			arena[i].view.ResourceType = b.ResourceType
		}
	}
	return out
}

// descend expands the subtree under root depth-first without recursion.
func descend(arena []arenaNode, root int, onPath map[int]bool) *TreeView {
	arena[root].view = newView(arena[root].row)
	onPath[root] = true
	stack := []frame{{idx: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := &arena[top.idx]
		if top.next == len(node.children) {
			delete(onPath, top.idx)
			stack = stack[:len(stack)-1]
			continue
		}

		c := node.children[top.next]
		top.next++
		if onPath[c] || arena[c].view != nil {
			// Cycle back into the current path.
			continue
		}

		arena[c].view = newView(arena[c].row)
		node.view.Children = append(node.view.Children, arena[c].view)
		onPath[c] = true
		stack = append(stack, frame{idx: c})
	}
	return arena[root].view
}

// topOfChain follows parent links from i until the parent is missing or the
// walk comes back to a node it has already passed.
func topOfChain(arena []arenaNode, i int) int {
	seen := map[int]bool{i: true}
	cur := i
	for {
		p := arena[cur].parent
		if p == -1 || seen[p] {
			return cur
		}
		seen[p] = true
		cur = p
	}
}

func sortByOrder(arena []arenaNode, idxs []int) {
	sort.SliceStable(idxs, func(a, b int) bool {
		return arena[idxs[a]].row.OrderIndex < arena[idxs[b]].row.OrderIndex
	})
}

func newView(row *sqlc.TreeNode) *TreeView {
	return &TreeView{ID: row.ID, Label: row.Name, Kind: row.NodeType}
}

// FindNode returns the node with id anywhere under roots, or nil.
func FindNode(roots []*TreeView, id string) *TreeView {
	stack := make([]*TreeView, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return n
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nil
}
