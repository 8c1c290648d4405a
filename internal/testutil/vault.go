package testutil

import (
	"notetree/internal/nt"
	"notetree/internal/vault"
)

// NewTestVault creates a new in-memory snapshot vault for testing.
func NewTestVault() nt.Vault {
	return vault.NewMemoryVault("test-vault")
}
