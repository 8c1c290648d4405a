package testutil

import (
	"notetree/internal/encryption"
	"notetree/internal/nt"
)

// NewTestEncryptor creates a configured test encryptor that accepts any passphrase.
func NewTestEncryptor() nt.Encryptor {
	return encryption.NewTestEncryptor()
}
