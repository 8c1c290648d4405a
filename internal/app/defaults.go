package app

import (
	"fmt"
	"os"
	"path/filepath"

	"notetree/internal/config"
	"notetree/internal/database"
)

// Defaults are the locations used before any config file has been read.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - NT_CONFIG_PATH: config file location (default: ~/.config/nt.toml)
//   - NT_HOME: base directory for nt data (default: ~/.local/share/nt)
func GetDefaults() (Defaults, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Defaults{}, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return Defaults{}, err
	}

	return Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking NT_CONFIG_PATH env var first,
// then falling back to the default ~/.config/nt.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("NT_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "nt.toml"), nil
}

// getBaseDir returns the base directory for nt data, checking NT_HOME env var first,
// then falling back to the XDG default ~/.local/share/nt.
func getBaseDir() (string, error) {
	if path := os.Getenv("NT_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "nt"), nil
}

// Paths are the resolved data locations of one run. They are computed once
// from the config and passed by value; nothing updates them afterwards.
type Paths struct {
	Database   string // empty for an in-memory database
	Notes      string
	Log        string
	Vault      string // empty unless the vault is a filesystem vault
	PublicKey  string
	PrivateKey string
}

// NewPaths resolves the locations named by cfg.
func NewPaths(cfg *config.Config) Paths {
	p := Paths{
		Notes:      cfg.Notes.Dir,
		Log:        cfg.LogDir,
		PublicKey:  cfg.Encryption.PublicKeyPath,
		PrivateKey: cfg.Encryption.PrivateKeyPath,
	}
	if cfg.Database.Type != "memory" {
		p.Database = filepath.Join(cfg.Database.DataDir, database.DBFileName)
	}
	if cfg.Vault.Type != "memory" {
		p.Vault = cfg.Vault.FSVaultRoot
	}
	return p
}
