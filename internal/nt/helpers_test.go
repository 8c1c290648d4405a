package nt_test

import (
	"testing"

	"notetree/internal/database/sqlc"
	"notetree/internal/nt"
	"notetree/internal/testutil"
)

// fixture wires an NTService over an in-memory database wrapped for fault
// injection and an in-memory note store.
type fixture struct {
	db     *testutil.FaultyDatabase
	store  *testutil.MemoryNoteStore
	clock  *testutil.StubClock
	idgen  *testutil.StubIDGenerator
	vault  nt.Vault
	svc    *nt.NTService
	logger nt.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:     testutil.NewFaultyDatabase(testutil.NewTestDatabase(t)),
		store:  testutil.NewMemoryNoteStore(),
		clock:  testutil.FixedClock(),
		idgen:  testutil.NewStubIDGenerator(),
		vault:  testutil.NewTestVault(),
		logger: nt.NewNopLogger(),
	}
	f.svc = nt.NewNTService(f.db, f.store, f.vault, testutil.NewTestEncryptor(), f.logger, f.clock, f.idgen)
	return f
}

func ptr[T any](v T) *T { return &v }

// mustCreateNode creates a folder node and fails the test on error.
func (f *fixture) mustCreateNode(t *testing.T, name, scope string, parentID *string) string {
	t.Helper()
	id, err := f.svc.CreateTreeNode(nt.CreateNodeParams{
		ParentID: parentID,
		Name:     name,
		Kind:     nt.KindFolder,
		Scope:    scope,
	})
	if err != nil {
		t.Fatalf("CreateTreeNode(%s) error = %v", name, err)
	}
	return id
}

func (f *fixture) node(t *testing.T, id string) *sqlc.TreeNode {
	t.Helper()
	n, err := f.db.FindTreeNode(id)
	if err != nil {
		t.Fatalf("FindTreeNode(%s) error = %v", id, err)
	}
	return n
}

// boundNode returns the node bound to a resource, failing if there is none.
func (f *fixture) boundNode(t *testing.T, resourceID, resourceType string) *sqlc.TreeNode {
	t.Helper()
	b, err := f.db.FindBindingForResource(resourceID, resourceType)
	if err != nil {
		t.Fatalf("FindBindingForResource() error = %v", err)
	}
	if b == nil {
		t.Fatalf("no binding for %s %s", resourceType, resourceID)
	}
	return f.node(t, b.NodeID)
}

// counts returns the number of tree nodes, notes and bindings in the database.
func (f *fixture) counts(t *testing.T) (nodes, notes, bindings int) {
	t.Helper()
	n, err := f.db.ListTreeNodes("")
	if err != nil {
		t.Fatalf("ListTreeNodes() error = %v", err)
	}
	ns, err := f.db.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	b, err := f.db.ListBindings("")
	if err != nil {
		t.Fatalf("ListBindings() error = %v", err)
	}
	return len(n), len(ns), len(b)
}

func assertKind(t *testing.T, err error, want nt.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %s", want)
	}
	if got := nt.KindOf(err); got != want {
		t.Fatalf("KindOf(%v) = %s, want %s", err, got, want)
	}
}
