package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notetree/internal/database/migrations"
	"notetree/internal/database/sqlc"
	"notetree/internal/nt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the nt.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
	}
}

// OpenConnection opens and configures a SQLite database connection.
// The pool is limited to one connection: the store has a single writer, and
// an in-memory database only exists on the connection that created it.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Tree node operations

func (s *SQLiteDatabase) FindTreeNode(id string) (*sqlc.TreeNode, error) {
	node, err := s.queries.GetTreeNodeByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding tree node: %w", err)
	}
	return &node, nil
}

func (s *SQLiteDatabase) CountChildren(nodeID string) (int64, error) {
	n, err := s.queries.CountChildTreeNodes(context.Background(), sql.NullString{String: nodeID, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("counting child nodes: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) ListTreeNodes(scope string) ([]*sqlc.TreeNode, error) {
	ctx := context.Background()

	var (
		nodes []sqlc.TreeNode
		err   error
	)
	if scope == "" {
		nodes, err = s.queries.ListTreeNodes(ctx)
	} else {
		nodes, err = s.queries.ListTreeNodesByScope(ctx, scope)
	}
	if err != nil {
		return nil, fmt.Errorf("listing tree nodes: %w", err)
	}

	result := make([]*sqlc.TreeNode, len(nodes))
	for i := range nodes {
		result[i] = &nodes[i]
	}
	return result, nil
}

// Binding operations

func (s *SQLiteDatabase) CountBindings(nodeID string) (int64, error) {
	n, err := s.queries.CountNodeResourcesByNode(context.Background(), nodeID)
	if err != nil {
		return 0, fmt.Errorf("counting node resources: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) FindBindingForResource(resourceID, resourceType string) (*sqlc.NodeResource, error) {
	binding, err := s.queries.GetNodeResourceByResource(context.Background(), sqlc.GetNodeResourceByResourceParams{
		ResourceID:   resourceID,
		ResourceType: resourceType,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding node resource: %w", err)
	}
	return &binding, nil
}

func (s *SQLiteDatabase) ListBindings(scope string) ([]*sqlc.NodeResource, error) {
	ctx := context.Background()

	var (
		bindings []sqlc.NodeResource
		err      error
	)
	if scope == "" {
		bindings, err = s.queries.ListNodeResources(ctx)
	} else {
		bindings, err = s.queries.ListNodeResourcesByScope(ctx, scope)
	}
	if err != nil {
		return nil, fmt.Errorf("listing node resources: %w", err)
	}

	result := make([]*sqlc.NodeResource, len(bindings))
	for i := range bindings {
		result[i] = &bindings[i]
	}
	return result, nil
}

// Resource operations

func (s *SQLiteDatabase) FindNote(id string) (*sqlc.Note, error) {
	note, err := s.queries.GetNoteByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding note: %w", err)
	}
	return &note, nil
}

func (s *SQLiteDatabase) ListNotes() ([]*sqlc.Note, error) {
	notes, err := s.queries.ListNotes(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	result := make([]*sqlc.Note, len(notes))
	for i := range notes {
		result[i] = &notes[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) FindSnippet(id string) (*sqlc.Snippet, error) {
	snippet, err := s.queries.GetSnippetByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding snippet: %w", err)
	}
	return &snippet, nil
}

// InTx runs fn inside a single transaction. Any error from fn, or from the
// commit itself, leaves the database untouched.
func (s *SQLiteDatabase) InTx(fn func(tx nt.Tx) error) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{ctx: ctx, q: s.queries.WithTx(tx)}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// MigrateUp applies pending schema migrations.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrationStatus reports the schema version against the embedded migrations.
func (s *SQLiteDatabase) MigrationStatus() (migrations.Status, error) {
	return migrations.GetStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// sqliteTx implements nt.Tx on top of transaction-bound queries.
type sqliteTx struct {
	ctx context.Context
	q   *sqlc.Queries
}

func (t *sqliteTx) InsertTreeNode(arg sqlc.InsertTreeNodeParams) error {
	if err := t.q.InsertTreeNode(t.ctx, arg); err != nil {
		return fmt.Errorf("inserting tree node: %w", err)
	}
	return nil
}

func (t *sqliteTx) UpdateTreeNode(arg sqlc.UpdateTreeNodeParams) (int64, error) {
	n, err := t.q.UpdateTreeNode(t.ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("updating tree node: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) DeleteTreeNode(id string) (int64, error) {
	n, err := t.q.DeleteTreeNodeByID(t.ctx, id)
	if err != nil {
		return 0, fmt.Errorf("deleting tree node: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) RenameNodesForResource(resourceID, resourceType, name string, now time.Time) (int64, error) {
	n, err := t.q.RenameTreeNodesByResource(t.ctx, sqlc.RenameTreeNodesByResourceParams{
		Name:         name,
		UpdatedAt:    now,
		ResourceID:   resourceID,
		ResourceType: resourceType,
	})
	if err != nil {
		return 0, fmt.Errorf("renaming bound tree nodes: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) InsertBinding(arg sqlc.InsertNodeResourceParams) error {
	if err := t.q.InsertNodeResource(t.ctx, arg); err != nil {
		return fmt.Errorf("inserting node resource: %w", err)
	}
	return nil
}

func (t *sqliteTx) DeleteBindingsForResource(resourceID, resourceType string) (int64, error) {
	n, err := t.q.DeleteNodeResourcesByResource(t.ctx, sqlc.DeleteNodeResourcesByResourceParams{
		ResourceID:   resourceID,
		ResourceType: resourceType,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting node resources: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) InsertNote(arg sqlc.InsertNoteParams) error {
	if err := t.q.InsertNote(t.ctx, arg); err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

func (t *sqliteTx) UpdateNoteTitle(id, title string, now time.Time) (int64, error) {
	n, err := t.q.UpdateNoteTitle(t.ctx, sqlc.UpdateNoteTitleParams{
		Title:     title,
		UpdatedAt: now,
		ID:        id,
	})
	if err != nil {
		return 0, fmt.Errorf("updating note title: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) TouchNote(id string, now time.Time) (int64, error) {
	n, err := t.q.TouchNote(t.ctx, sqlc.TouchNoteParams{UpdatedAt: now, ID: id})
	if err != nil {
		return 0, fmt.Errorf("touching note: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) DeleteNote(id string) (int64, error) {
	n, err := t.q.DeleteNoteByID(t.ctx, id)
	if err != nil {
		return 0, fmt.Errorf("deleting note: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) InsertSnippet(arg sqlc.InsertSnippetParams) error {
	if err := t.q.InsertSnippet(t.ctx, arg); err != nil {
		return fmt.Errorf("inserting snippet: %w", err)
	}
	return nil
}

func (t *sqliteTx) UpdateSnippet(arg sqlc.UpdateSnippetParams) (int64, error) {
	n, err := t.q.UpdateSnippet(t.ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("updating snippet: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) DeleteSnippet(id string) (int64, error) {
	n, err := t.q.DeleteSnippetByID(t.ctx, id)
	if err != nil {
		return 0, fmt.Errorf("deleting snippet: %w", err)
	}
	return n, nil
}

// Compile-time check that SQLiteDatabase implements nt.Database interface
var _ nt.Database = (*SQLiteDatabase)(nil)
