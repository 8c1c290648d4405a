package encryption

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notetree/internal/config"
)

func newTestAgeEncryptor(t *testing.T) *AgeEncryptor {
	t.Helper()
	dir := t.TempDir()
	return NewAgeEncryptor(config.EncryptionConfig{
		Type:           "age",
		PublicKeyPath:  filepath.Join(dir, "keys", "nt.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "nt.key"),
	})
}

func TestAgeEncryptor_Setup(t *testing.T) {
	t.Parallel()

	t.Run("writes both keys", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		if e.IsConfigured() {
			t.Fatal("IsConfigured() = true before Setup")
		}

		if err := e.Setup("correct horse"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if !e.IsConfigured() {
			t.Error("IsConfigured() = false after Setup")
		}

		recipient, err := e.Recipient()
		if err != nil {
			t.Fatalf("Recipient() error = %v", err)
		}
		if !strings.HasPrefix(recipient, "age1") {
			t.Errorf("Recipient() = %q, want age1 prefix", recipient)
		}

		info, err := os.Stat(e.privateKeyPath)
		if err != nil {
			t.Fatalf("stat private key: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("private key permissions = %o, want 600", perm)
		}
		data, _ := os.ReadFile(e.privateKeyPath)
		if bytes.Contains(data, []byte("AGE-SECRET-KEY")) {
			t.Error("private key stored in plaintext")
		}
	})

	t.Run("refuses to replace keys", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		if err := e.Setup("first"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		before, _ := e.Recipient()

		if err := e.Setup("second"); err == nil {
			t.Fatal("second Setup() = nil, want error")
		}
		after, _ := e.Recipient()
		if before != after {
			t.Error("public key changed after rejected Setup")
		}
	})

	t.Run("empty passphrase", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		if err := e.Setup(""); err == nil {
			t.Error("Setup(\"\") = nil, want error")
		}
		if e.IsConfigured() {
			t.Error("IsConfigured() = true after rejected Setup")
		}
	})
}

func TestAgeEncryptor_EncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)
	if err := e.Setup("test-passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	ctx, err := e.Unlock("test-passphrase")
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "note body", input: []byte("# Plan\n\nship it")},
		{name: "empty", input: []byte{}},
		{name: "binary", input: []byte{0x1f, 0x8b, 0x00, 0xff}},
		{name: "large", input: bytes.Repeat([]byte("abcdef"), 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var encrypted bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &encrypted); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(tt.input) > 0 && bytes.Contains(encrypted.Bytes(), tt.input) {
				t.Error("ciphertext contains the plaintext")
			}

			var decrypted bytes.Buffer
			if err := ctx.Decrypt(&encrypted, &decrypted); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(decrypted.Bytes(), tt.input) {
				t.Errorf("round-trip failed: got %d bytes, want %d bytes", decrypted.Len(), len(tt.input))
			}
		})
	}
}

func TestAgeEncryptor_Errors(t *testing.T) {
	t.Parallel()

	t.Run("wrong passphrase", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		if err := e.Setup("correct"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if _, err := e.Unlock("wrong"); err == nil {
			t.Error("Unlock() with wrong passphrase = nil error")
		}
	})

	t.Run("encrypt before setup", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		var buf bytes.Buffer
		if err := e.Encrypt(strings.NewReader("data"), &buf); err == nil {
			t.Error("Encrypt() before Setup = nil error")
		}
	})

	t.Run("unlock before setup", func(t *testing.T) {
		t.Parallel()
		e := newTestAgeEncryptor(t)
		if _, err := e.Unlock("passphrase"); err == nil {
			t.Error("Unlock() before Setup = nil error")
		}
	})
}

func TestTestEncryptor(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		e := NewTestEncryptor()
		var encrypted bytes.Buffer
		if err := e.Encrypt(strings.NewReader("hello"), &encrypted); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if !bytes.HasPrefix(encrypted.Bytes(), testHeader) {
			t.Error("encrypted output does not start with test header")
		}

		ctx, err := e.Unlock("anything")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		var decrypted bytes.Buffer
		if err := ctx.Decrypt(&encrypted, &decrypted); err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if decrypted.String() != "hello" {
			t.Errorf("Decrypt() = %q, want hello", decrypted.String())
		}
	})

	t.Run("passphrase from Setup is enforced", func(t *testing.T) {
		e := NewTestEncryptor()
		if err := e.Setup("secret"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if _, err := e.Unlock("nope"); err == nil {
			t.Error("Unlock() with wrong passphrase = nil error")
		}
		if _, err := e.Unlock("secret"); err != nil {
			t.Errorf("Unlock() error = %v", err)
		}
	})

	t.Run("rejects data without header", func(t *testing.T) {
		var out bytes.Buffer
		ctx := &TestDecryptionContext{}
		if err := ctx.Decrypt(strings.NewReader("plaintext!"), &out); err == nil {
			t.Error("Decrypt() of unmarked data = nil error")
		}
	})
}

func TestNewEncryptorFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EncryptionConfig
		wantErr bool
	}{
		{"age", config.EncryptionConfig{Type: "age", PublicKeyPath: "/k/nt.pub", PrivateKeyPath: "/k/nt.key"}, false},
		{"default is age", config.EncryptionConfig{PublicKeyPath: "/k/nt.pub", PrivateKeyPath: "/k/nt.key"}, false},
		{"age without paths", config.EncryptionConfig{Type: "age"}, true},
		{"test", config.EncryptionConfig{Type: "test"}, false},
		{"unknown", config.EncryptionConfig{Type: "rot13"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEncryptorFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptorFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got == nil {
				t.Error("NewEncryptorFromConfig() = nil, want encryptor")
			}
		})
	}
}
