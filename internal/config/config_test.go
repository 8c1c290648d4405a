package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := NewConfig("/home/user/.local/share/nt")
	original.Vault = VaultConfig{Type: "filesystem", Name: "usb", FSVaultRoot: "/mnt/usb/nt"}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.Database != original.Database {
		t.Errorf("Database = %+v, want %+v", got.Database, original.Database)
	}
	if got.Notes.Dir != original.Notes.Dir {
		t.Errorf("Notes.Dir = %q, want %q", got.Notes.Dir, original.Notes.Dir)
	}
	if got.Vault != original.Vault {
		t.Errorf("Vault = %+v, want %+v", got.Vault, original.Vault)
	}
	if got.Encryption != original.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
	}
}

func TestManager_Read_Document(t *testing.T) {
	doc := `
base_dir = "/data/nt"
log_dir = "/var/log/nt"

[database]
type = "memory"

[notes]
dir = "/data/nt/notes"
`
	m := &Manager{}
	cfg, err := m.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Database.Type != "memory" {
		t.Errorf("Database.Type = %q, want memory", cfg.Database.Type)
	}
	if cfg.Database.DataDir != "" {
		t.Errorf("Database.DataDir = %q, want empty", cfg.Database.DataDir)
	}
	if cfg.LogDir != "/var/log/nt" {
		t.Errorf("LogDir = %q, want /var/log/nt", cfg.LogDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestManager_Read_Invalid(t *testing.T) {
	m := &Manager{}
	if _, err := m.Read(strings.NewReader("base_dir = [unterminated")); err == nil {
		t.Error("Read() expected error for malformed TOML")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("/base")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"LogDir", cfg.LogDir, filepath.Join("/base", "log")},
		{"Database.DataDir", cfg.Database.DataDir, filepath.Join("/base", "db")},
		{"Notes.Dir", cfg.Notes.Dir, filepath.Join("/base", "notes")},
		{"Vault.FSVaultRoot", cfg.Vault.FSVaultRoot, filepath.Join("/base", "vault")},
		{"PublicKeyPath", cfg.Encryption.PublicKeyPath, filepath.Join("/base", "keys", "nt.pub")},
		{"PrivateKeyPath", cfg.Encryption.PrivateKeyPath, filepath.Join("/base", "keys", "nt.key")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing log dir", func(c *Config) { c.LogDir = "" }},
		{"missing notes dir", func(c *Config) { c.Notes.Dir = "" }},
		{"sqlite without data dir", func(c *Config) { c.Database.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/base")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("writes a readable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", "nt.toml")
		cfg := NewConfig("/base")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Notes.Dir != cfg.Notes.Dir {
			t.Errorf("Notes.Dir = %q, want %q", got.Notes.Dir, cfg.Notes.Dir)
		}
	})

	t.Run("refuses to initialize twice", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nt.toml")
		if err := Init(path, NewConfig("/first")); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, NewConfig("/second")); err == nil {
			t.Fatal("second Init() = nil, want error")
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BaseDir != "/first" {
			t.Errorf("BaseDir = %q, want the first configuration to survive", got.BaseDir)
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("ReadFromFile() expected error for missing file")
	}
	if !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("ReadFromFile() error = %v, want not-exist cause", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}
