package nt_test

import (
	"errors"
	"testing"
	"time"

	"notetree/internal/nt"
	"notetree/internal/testutil"
)

func TestTreeStore_Create(t *testing.T) {
	t.Run("creates root with defaults", func(t *testing.T) {
		f := newFixture(t)

		id, err := f.svc.CreateTreeNode(nt.CreateNodeParams{Name: "Projects", Kind: nt.KindFolder, Scope: nt.ScopeNotes})
		if err != nil {
			t.Fatalf("CreateTreeNode() error = %v", err)
		}

		n := f.node(t, id)
		if n == nil {
			t.Fatal("node not persisted")
		}
		if n.ParentID.Valid {
			t.Errorf("ParentID = %v, want NULL", n.ParentID)
		}
		if n.OrderIndex != 0 {
			t.Errorf("OrderIndex = %d, want 0", n.OrderIndex)
		}
		if n.Name != "Projects" || n.NodeType != nt.KindFolder || n.Scope != nt.ScopeNotes {
			t.Errorf("node = %+v", n)
		}
		if !n.CreatedAt.Equal(f.clock.Now()) || !n.UpdatedAt.Equal(f.clock.Now()) {
			t.Errorf("timestamps = %v/%v, want %v", n.CreatedAt, n.UpdatedAt, f.clock.Now())
		}
	})

	t.Run("creates child with order", func(t *testing.T) {
		f := newFixture(t)
		root := f.mustCreateNode(t, "root", nt.ScopeNotes, nil)

		id, err := f.svc.CreateTreeNode(nt.CreateNodeParams{
			ParentID:   &root,
			Name:       "child",
			Kind:       "custom",
			Scope:      nt.ScopeNotes,
			OrderIndex: ptr(int64(7)),
		})
		if err != nil {
			t.Fatalf("CreateTreeNode() error = %v", err)
		}

		n := f.node(t, id)
		if n.ParentID.String != root {
			t.Errorf("ParentID = %q, want %q", n.ParentID.String, root)
		}
		if n.OrderIndex != 7 {
			t.Errorf("OrderIndex = %d, want 7", n.OrderIndex)
		}
		if n.NodeType != "custom" {
			t.Errorf("NodeType = %q, want custom", n.NodeType)
		}
	})

	t.Run("empty parent id means root", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.svc.CreateTreeNode(nt.CreateNodeParams{ParentID: ptr(""), Name: "x", Kind: nt.KindFolder, Scope: nt.ScopeSnippets})
		if err != nil {
			t.Fatalf("CreateTreeNode() error = %v", err)
		}
		if f.node(t, id).ParentID.Valid {
			t.Error("ParentID set, want NULL")
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateTreeNode(nt.CreateNodeParams{ParentID: ptr("ghost"), Name: "x", Kind: nt.KindFolder, Scope: nt.ScopeNotes})
		assertKind(t, err, nt.KindNotFound)

		if nodes, _, _ := f.counts(t); nodes != 0 {
			t.Errorf("nodes = %d, want 0", nodes)
		}
	})

	t.Run("unknown scope", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateTreeNode(nt.CreateNodeParams{Name: "x", Kind: nt.KindFolder, Scope: "attachments"})
		assertKind(t, err, nt.KindInvalidReference)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.db.FailOn(testutil.OpInsertTreeNode, errors.New("disk full"))

		_, err := f.svc.CreateTreeNode(nt.CreateNodeParams{Name: "x", Kind: nt.KindFolder, Scope: nt.ScopeNotes})
		assertKind(t, err, nt.KindStorageFailure)
	})
}

func TestTreeStore_Update(t *testing.T) {
	t.Run("renames, reparents and reorders", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateNode(t, "a", nt.ScopeNotes, nil)
		b := f.mustCreateNode(t, "b", nt.ScopeNotes, nil)
		f.clock.Advance(time.Hour)

		err := f.svc.UpdateTreeNode(b, nt.UpdateNodeParams{Name: "b2", ParentID: &a, OrderIndex: ptr(int64(3))})
		if err != nil {
			t.Fatalf("UpdateTreeNode() error = %v", err)
		}

		n := f.node(t, b)
		if n.Name != "b2" || n.ParentID.String != a || n.OrderIndex != 3 {
			t.Errorf("node = %+v", n)
		}
		if !n.UpdatedAt.Equal(f.clock.Now()) {
			t.Errorf("UpdatedAt = %v, want %v", n.UpdatedAt, f.clock.Now())
		}
		if n.CreatedAt.Equal(n.UpdatedAt) {
			t.Error("CreatedAt changed along with UpdatedAt")
		}
	})

	t.Run("omitted parent and order clear to root and zero", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateNode(t, "a", nt.ScopeNotes, nil)
		b, err := f.svc.CreateTreeNode(nt.CreateNodeParams{ParentID: &a, Name: "b", Kind: nt.KindFolder, Scope: nt.ScopeNotes, OrderIndex: ptr(int64(4))})
		if err != nil {
			t.Fatalf("CreateTreeNode() error = %v", err)
		}

		if err := f.svc.UpdateTreeNode(b, nt.UpdateNodeParams{Name: "b"}); err != nil {
			t.Fatalf("UpdateTreeNode() error = %v", err)
		}

		n := f.node(t, b)
		if n.ParentID.Valid {
			t.Errorf("ParentID = %v, want NULL", n.ParentID)
		}
		if n.OrderIndex != 0 {
			t.Errorf("OrderIndex = %d, want 0", n.OrderIndex)
		}
	})

	t.Run("self parent is always rejected", func(t *testing.T) {
		f := newFixture(t)
		root := f.mustCreateNode(t, "root", nt.ScopeNotes, nil)
		child := f.mustCreateNode(t, "child", nt.ScopeNotes, &root)
		other := f.mustCreateNode(t, "other", nt.ScopeSnippets, nil)

		for _, id := range []string{root, child, other} {
			err := f.svc.UpdateTreeNode(id, nt.UpdateNodeParams{Name: "x", ParentID: ptr(id)})
			assertKind(t, err, nt.KindInvalidReference)
			if f.node(t, id).Name == "x" {
				t.Errorf("node %s renamed despite rejected update", id)
			}
		}
	})

	t.Run("missing node", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.UpdateTreeNode("ghost", nt.UpdateNodeParams{Name: "x"})
		assertKind(t, err, nt.KindNotFound)
		if !errors.Is(err, &nt.Error{Kind: nt.KindNotFound, ID: "ghost"}) {
			t.Errorf("error %v does not carry the node id", err)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateNode(t, "a", nt.ScopeNotes, nil)
		err := f.svc.UpdateTreeNode(a, nt.UpdateNodeParams{Name: "a", ParentID: ptr("ghost")})
		assertKind(t, err, nt.KindNotFound)
	})

	t.Run("descendant parent is rejected", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateNode(t, "a", nt.ScopeNotes, nil)
		b := f.mustCreateNode(t, "b", nt.ScopeNotes, &a)
		c := f.mustCreateNode(t, "c", nt.ScopeNotes, &b)

		err := f.svc.UpdateTreeNode(a, nt.UpdateNodeParams{Name: "a", ParentID: &c})
		assertKind(t, err, nt.KindInvalidReference)

		if f.node(t, a).ParentID.Valid {
			t.Error("a was reparented into its own subtree")
		}
	})

	t.Run("cross scope move is allowed", func(t *testing.T) {
		f := newFixture(t)
		note := f.mustCreateNode(t, "n", nt.ScopeNotes, nil)
		snip := f.mustCreateNode(t, "s", nt.ScopeSnippets, nil)

		if err := f.svc.UpdateTreeNode(note, nt.UpdateNodeParams{Name: "n", ParentID: &snip}); err != nil {
			t.Fatalf("UpdateTreeNode() error = %v", err)
		}
	})
}

func TestTreeStore_Delete(t *testing.T) {
	t.Run("leaf node is removed", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateNode(t, "a", nt.ScopeNotes, nil)

		if err := f.svc.DeleteTreeNode(a); err != nil {
			t.Fatalf("DeleteTreeNode() error = %v", err)
		}
		if f.node(t, a) != nil {
			t.Error("node still present")
		}
	})

	t.Run("node with child fails until the child is gone", func(t *testing.T) {
		f := newFixture(t)
		parent := f.mustCreateNode(t, "parent", nt.ScopeNotes, nil)
		child := f.mustCreateNode(t, "child", nt.ScopeNotes, &parent)

		err := f.svc.DeleteTreeNode(parent)
		assertKind(t, err, nt.KindNonEmptyNode)
		var ntErr *nt.Error
		if !errors.As(err, &ntErr) || ntErr.Reason != nt.ReasonHasChildren {
			t.Errorf("error = %v, want children reason", err)
		}

		if err := f.svc.DeleteTreeNode(child); err != nil {
			t.Fatalf("DeleteTreeNode(child) error = %v", err)
		}
		if err := f.svc.DeleteTreeNode(parent); err != nil {
			t.Fatalf("DeleteTreeNode(parent) after child removal error = %v", err)
		}
	})

	t.Run("node with binding fails", func(t *testing.T) {
		f := newFixture(t)
		noteID, err := f.svc.CreateNote("Plan", nil)
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		node := f.boundNode(t, noteID, nt.ResourceNote)

		err = f.svc.DeleteTreeNode(node.ID)
		assertKind(t, err, nt.KindNonEmptyNode)
		var ntErr *nt.Error
		if !errors.As(err, &ntErr) || ntErr.Reason != nt.ReasonHasBoundResources {
			t.Errorf("error = %v, want bindings reason", err)
		}
	})

	t.Run("children are reported before bindings", func(t *testing.T) {
		f := newFixture(t)
		noteID, _ := f.svc.CreateNote("Plan", nil)
		node := f.boundNode(t, noteID, nt.ResourceNote)
		f.mustCreateNode(t, "under note", nt.ScopeNotes, &node.ID)

		err := f.svc.DeleteTreeNode(node.ID)
		var ntErr *nt.Error
		if !errors.As(err, &ntErr) || ntErr.Reason != nt.ReasonHasChildren {
			t.Errorf("error = %v, want children reason first", err)
		}
	})

	t.Run("missing node", func(t *testing.T) {
		f := newFixture(t)
		assertKind(t, f.svc.DeleteTreeNode("ghost"), nt.KindNotFound)
	})
}

func TestTreeStore_List(t *testing.T) {
	f := newFixture(t)
	r1 := f.mustCreateNode(t, "r1", nt.ScopeNotes, nil)
	f.mustCreateNode(t, "s1", nt.ScopeSnippets, nil)
	f.mustCreateNode(t, "c1", nt.ScopeNotes, &r1)

	notes, err := f.svc.ListTreeNodes(nt.ScopeNotes)
	if err != nil {
		t.Fatalf("ListTreeNodes() error = %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	if notes[0].ID != r1 {
		t.Errorf("first node = %s, want root %s first", notes[0].ID, r1)
	}

	all, err := f.svc.ListTreeNodes("")
	if err != nil {
		t.Fatalf("ListTreeNodes() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	f.db.FailOn(testutil.OpListTreeNodes, errors.New("locked"))
	_, err = f.svc.ListTreeNodes("")
	assertKind(t, err, nt.KindStorageFailure)
}
