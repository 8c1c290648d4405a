package vault

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notetree/internal/config"
	"notetree/internal/nt"
)

// vaultFactories lets every test run against both implementations.
func vaultFactories() map[string]func(t *testing.T) nt.Vault {
	return map[string]func(t *testing.T) nt.Vault{
		"filesystem": func(t *testing.T) nt.Vault {
			t.Helper()
			v, err := NewFileSystemVault("test", t.TempDir())
			if err != nil {
				t.Fatalf("NewFileSystemVault() error = %v", err)
			}
			return v
		},
		"memory": func(t *testing.T) nt.Vault {
			return NewMemoryVault("test")
		},
	}
}

func TestNewFileSystemVault(t *testing.T) {
	t.Run("creates directory structure", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "vault")

		v, err := NewFileSystemVault("usb", root)
		if err != nil {
			t.Fatalf("NewFileSystemVault() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "snapshots")); err != nil {
			t.Errorf("snapshots directory not created: %v", err)
		}
		if v.name != "usb" {
			t.Errorf("name = %q, want %q", v.name, "usb")
		}
		if err := v.ValidateSetup(); err != nil {
			t.Errorf("ValidateSetup() error = %v", err)
		}
	})

	t.Run("ValidateSetup fails when root disappears", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "vault")
		v, err := NewFileSystemVault("usb", root)
		if err != nil {
			t.Fatalf("NewFileSystemVault() error = %v", err)
		}
		if err := os.RemoveAll(root); err != nil {
			t.Fatalf("RemoveAll() error = %v", err)
		}
		if err := v.ValidateSetup(); err == nil {
			t.Error("ValidateSetup() = nil, want error")
		}
	})
}

func TestVault_PutGetSnapshot(t *testing.T) {
	for kind, newVault := range vaultFactories() {
		t.Run(kind, func(t *testing.T) {
			v := newVault(t)
			data := []byte("encrypted archive bytes")

			if err := v.PutSnapshot("20240115T103000Z.tar.gz.age", bytes.NewReader(data), int64(len(data))); err != nil {
				t.Fatalf("PutSnapshot() error = %v", err)
			}

			var buf bytes.Buffer
			if err := v.GetSnapshot("20240115T103000Z.tar.gz.age", &buf); err != nil {
				t.Fatalf("GetSnapshot() error = %v", err)
			}
			if !bytes.Equal(buf.Bytes(), data) {
				t.Errorf("GetSnapshot() = %q, want %q", buf.Bytes(), data)
			}
		})
	}
}

func TestVault_PutSnapshot_Errors(t *testing.T) {
	for kind, newVault := range vaultFactories() {
		t.Run(kind, func(t *testing.T) {
			t.Run("size mismatch", func(t *testing.T) {
				v := newVault(t)
				err := v.PutSnapshot("snap", strings.NewReader("hello"), 100)
				if err == nil || !strings.Contains(err.Error(), "size mismatch") {
					t.Errorf("PutSnapshot() error = %v, want size mismatch", err)
				}
				if names, _ := v.ListSnapshots(); len(names) != 0 {
					t.Errorf("ListSnapshots() = %v, want none after failed put", names)
				}
			})

			t.Run("duplicate name", func(t *testing.T) {
				v := newVault(t)
				if err := v.PutSnapshot("snap", strings.NewReader("a"), 1); err != nil {
					t.Fatalf("PutSnapshot() error = %v", err)
				}
				if err := v.PutSnapshot("snap", strings.NewReader("b"), 1); err == nil {
					t.Error("second PutSnapshot() = nil, want error")
				}
			})

			t.Run("invalid names", func(t *testing.T) {
				v := newVault(t)
				for _, name := range []string{"", "..", "../escape", "a/b", ".hidden"} {
					if err := v.PutSnapshot(name, strings.NewReader("x"), 1); err == nil {
						t.Errorf("PutSnapshot(%q) = nil, want error", name)
					}
				}
			})
		})
	}
}

func TestVault_GetSnapshot_NotFound(t *testing.T) {
	for kind, newVault := range vaultFactories() {
		t.Run(kind, func(t *testing.T) {
			v := newVault(t)
			var buf bytes.Buffer
			err := v.GetSnapshot("missing", &buf)
			if err == nil || !strings.Contains(err.Error(), "snapshot not found") {
				t.Errorf("GetSnapshot() error = %v, want not found", err)
			}
		})
	}
}

func TestVault_ListSnapshots(t *testing.T) {
	for kind, newVault := range vaultFactories() {
		t.Run(kind, func(t *testing.T) {
			v := newVault(t)
			for _, name := range []string{"b", "c", "a"} {
				if err := v.PutSnapshot(name, strings.NewReader(name), 1); err != nil {
					t.Fatalf("PutSnapshot(%s) error = %v", name, err)
				}
			}

			got, err := v.ListSnapshots()
			if err != nil {
				t.Fatalf("ListSnapshots() error = %v", err)
			}
			want := []string{"a", "b", "c"}
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("ListSnapshots() = %v, want %v", got, want)
			}
		})
	}
}

func TestFileSystemVault_ListSkipsTempFiles(t *testing.T) {
	root := t.TempDir()
	v, err := NewFileSystemVault("test", root)
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "snapshots", ".tmp-123"), []byte("partial"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	names, err := v.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListSnapshots() = %v, want temp files skipped", names)
	}
}

func TestNewVaultFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.VaultConfig
		wantErr bool
	}{
		{
			name:    "memory vault",
			cfg:     config.VaultConfig{Type: "memory", Name: "test-memory"},
			wantErr: false,
		},
		{
			name:    "filesystem vault",
			cfg:     config.VaultConfig{Type: "filesystem", Name: "test-fs", FSVaultRoot: t.TempDir()},
			wantErr: false,
		},
		{
			name:    "filesystem vault without root",
			cfg:     config.VaultConfig{Type: "filesystem", Name: "test-fs"},
			wantErr: true,
		},
		{
			name:    "unknown vault type",
			cfg:     config.VaultConfig{Type: "s3", Name: "test-s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewVaultFromConfig(tt.cfg)

			if (err != nil) != tt.wantErr {
				t.Fatalf("NewVaultFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Errorf("NewVaultFromConfig() = %v, want nil on error", got)
				}
				return
			}
			if err := got.ValidateSetup(); err != nil {
				t.Errorf("ValidateSetup() error = %v", err)
			}
		})
	}
}
