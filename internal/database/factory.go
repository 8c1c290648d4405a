package database

import (
	"fmt"
	"os"
	"path/filepath"

	"notetree/internal/config"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "notetree.db"

// NewDatabaseFromConfig creates a SQLiteDatabase based on the database config type.
// In-memory databases are migrated immediately since nothing else could ever
// reach them; file databases are left for CheckMigrations / MigrateUp.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, DBFileName))
	case "memory":
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating in-memory database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
