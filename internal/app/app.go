package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"notetree/internal/config"
	"notetree/internal/database"
	"notetree/internal/database/migrations"
	"notetree/internal/database/sqlc"
	"notetree/internal/encryption"
	"notetree/internal/fs"
	"notetree/internal/nt"
	"notetree/internal/vault"
)

// Options tune how an NTApp reports to the terminal.
type Options struct {
	Verbose bool      // echo every log record to Stderr, not just warnings
	Stderr  io.Writer // defaults to os.Stderr
}

// NTApp is the application layer between the CLI and NTService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw CLI values, and manages the DB lifecycle on Close.
type NTApp struct {
	cfg       *config.Config
	paths     Paths
	db        *database.SQLiteDatabase
	encryptor nt.Encryptor
	service   *nt.NTService
	op        *Operation
	logger    *slog.Logger
	logFile   *os.File
}

// NewNTApp creates a fully wired NTApp from the given config.
// operation identifies the CLI command being run (e.g. "CreateNote", "Backup").
// The caller must call Close when done.
func NewNTApp(cfg *config.Config, operation string, opts Options) (*NTApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	paths := NewPaths(cfg)
	op := NewOperation(operation, time.Now())

	logger, logFile, err := newLogger(paths.Log, op.ID, opts.Verbose, opts.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}

	fail := func(format string, err error) (*NTApp, error) {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf(format, err)
	}

	if err := db.CheckMigrations(); err != nil {
		return fail("database schema out of date (run 'nt db migrate'): %w", err)
	}

	store, err := fs.NewOSNoteStore(paths.Notes)
	if err != nil {
		return fail("creating note store: %w", err)
	}

	v, err := vault.NewVaultFromConfig(cfg.Vault)
	if err != nil {
		return fail("creating vault: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fail("creating encryptor: %w", err)
	}

	svc := nt.NewNTService(db, store, v, enc, &slogAdapter{l: logger}, nt.RealClock{}, nt.UUIDGenerator{})
	logger.Debug("operation started", "operation", operation)

	return &NTApp{
		cfg:       cfg,
		paths:     paths,
		db:        db,
		encryptor: enc,
		service:   svc,
		op:        op,
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// Paths returns the resolved data locations of this run.
func (a *NTApp) Paths() Paths {
	return a.paths
}

// optional maps the CLI convention "empty means absent" onto a pointer.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Tree nodes

// CreateNode creates a tree node. An empty parent creates a root.
func (a *NTApp) CreateNode(name, kind, scope, parent string, order *int64) (string, error) {
	id, err := a.service.CreateTreeNode(nt.CreateNodeParams{
		ParentID:   optional(parent),
		Name:       name,
		Kind:       kind,
		Scope:      scope,
		OrderIndex: order,
	})
	return id, a.op.Record(err)
}

// UpdateNode renames, reparents and reorders a node. An empty parent moves it
// to the root and a nil order resets it to 0.
func (a *NTApp) UpdateNode(id, name, parent string, order *int64) error {
	return a.op.Record(a.service.UpdateTreeNode(id, nt.UpdateNodeParams{
		Name:       name,
		ParentID:   optional(parent),
		OrderIndex: order,
	}))
}

func (a *NTApp) DeleteNode(id string) error {
	return a.op.Record(a.service.DeleteTreeNode(id))
}

// ListNodes returns the flat node list of scope; empty scope lists all.
func (a *NTApp) ListNodes(scope string) ([]*sqlc.TreeNode, error) {
	nodes, err := a.service.ListTreeNodes(scope)
	return nodes, a.op.Record(err)
}

// Tree returns the nested view of scope; empty scope nests all nodes.
func (a *NTApp) Tree(scope string) ([]*nt.TreeView, error) {
	roots, err := a.service.ListTreeNodesTree(scope)
	return roots, a.op.Record(err)
}

// Notes

func (a *NTApp) CreateNote(title, parent string) (string, error) {
	id, err := a.service.CreateNote(title, optional(parent))
	return id, a.op.Record(err)
}

func (a *NTApp) GetNote(id string) (*nt.NoteDetail, error) {
	note, err := a.service.GetNote(id)
	return note, a.op.Record(err)
}

func (a *NTApp) ListNotes() ([]*sqlc.Note, error) {
	notes, err := a.service.ListNotes()
	return notes, a.op.Record(err)
}

func (a *NTApp) RenameNote(id, title string) error {
	return a.op.Record(a.service.UpdateNoteTitle(id, title))
}

func (a *NTApp) WriteNote(id, content string) error {
	return a.op.Record(a.service.UpdateNoteContent(id, content))
}

func (a *NTApp) DeleteNote(id string) error {
	return a.op.Record(a.service.DeleteNote(id))
}

// Snippets

// CreateSnippet creates a snippet. An empty language is stored as absent.
func (a *NTApp) CreateSnippet(title, language, content, parent string) (string, error) {
	id, err := a.service.CreateSnippet(title, optional(language), content, optional(parent))
	return id, a.op.Record(err)
}

func (a *NTApp) GetSnippet(id string) (*nt.SnippetDetail, error) {
	s, err := a.service.GetSnippetDetail(id)
	return s, a.op.Record(err)
}

func (a *NTApp) UpdateSnippet(id, title, language, content string) error {
	return a.op.Record(a.service.UpdateSnippetDetail(id, title, optional(language), content))
}

func (a *NTApp) DeleteSnippet(id string) error {
	return a.op.Record(a.service.DeleteSnippetOnly(id))
}

// Snapshots

// Backup stores an encrypted snapshot and returns its name.
func (a *NTApp) Backup() (string, error) {
	name, err := a.service.Backup()
	return name, a.op.Record(err)
}

func (a *NTApp) ListSnapshots() ([]string, error) {
	names, err := a.service.ListSnapshots()
	return names, a.op.Record(err)
}

// Restore unlocks the private key with passphrase and unpacks the named
// snapshot under dest. Returns the list of restored file paths.
func (a *NTApp) Restore(name, passphrase, dest string) ([]string, error) {
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, a.op.Record(fmt.Errorf("resolving path: %w", err))
	}

	decryptCtx, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return nil, a.op.Record(fmt.Errorf("unlocking key: %w", err))
	}

	written, err := a.service.Restore(name, decryptCtx, absDest)
	return written, a.op.Record(err)
}

// Close logs how the operation ended and closes all resources.
func (a *NTApp) Close() error {
	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"duration", time.Since(a.op.StartedAt).Truncate(time.Millisecond))

	var firstErr error
	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// InitKeys generates the snapshot key pair, sealing the private key with
// passphrase. Existing keys are never replaced.
func InitKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("generating keys: %w", err)
	}
	return nil
}

// DatabaseStatus opens the configured database without requiring an
// up-to-date schema and reports its migration status.
func DatabaseStatus(cfg *config.Config) (migrations.Status, error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return migrations.Status{}, fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	return db.MigrationStatus()
}

// MigrateDatabase applies pending migrations to the configured database and
// returns the status before and after.
func MigrateDatabase(cfg *config.Config) (before, after migrations.Status, err error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return before, after, fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	if before, err = db.MigrationStatus(); err != nil {
		return before, after, err
	}
	if err := db.MigrateUp(); err != nil {
		return before, after, fmt.Errorf("migrating database: %w", err)
	}
	after, err = db.MigrationStatus()
	return before, after, err
}
