package nt

import "io"

// Vault stores encrypted snapshots. All operations stream through
// io.Reader/io.Writer.
type Vault interface {
	// PutSnapshot stores a snapshot under name. size is the number of bytes
	// that will be read from r.
	PutSnapshot(name string, r io.Reader, size int64) error

	// GetSnapshot writes the named snapshot to w.
	GetSnapshot(name string, w io.Writer) error

	// ListSnapshots returns the stored snapshot names in ascending order.
	ListSnapshots() ([]string, error)

	// ValidateSetup verifies that the vault is accessible and properly configured.
	ValidateSetup() error
}

// Encryptor encrypts snapshots with a public key and unlocks the matching
// private key with a passphrase for restores.
type Encryptor interface {
	// Setup generates the key pair. The private key is stored encrypted
	// with passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key and returns a DecryptionContext.
	// Returns an error if the passphrase is incorrect.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for one restore.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
