package nt

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	snapshotDBEntry  = "notetree.db"
	snapshotNotesDir = "notes"
	snapshotSuffix   = ".tar.gz.age"
)

// Snapshots writes encrypted archives of the database and every note body to
// a vault and restores them into a directory.
type Snapshots struct {
	db        Database
	store     NoteStore
	vault     Vault
	encryptor Encryptor
	clock     Clock
	logger    Logger
}

func NewSnapshots(db Database, store NoteStore, vault Vault, encryptor Encryptor, clock Clock, logger Logger) *Snapshots {
	return &Snapshots{
		db:        db,
		store:     store,
		vault:     vault,
		encryptor: encryptor,
		clock:     clock,
		logger:    logger,
	}
}

// Backup archives a consistent database copy plus the note bodies, encrypts
// the archive and stores it in the vault. It returns the snapshot name.
func (s *Snapshots) Backup() (string, error) {
	if !s.encryptor.IsConfigured() {
		return "", fmt.Errorf("encryption keys not configured: run 'nt key init'")
	}

	tmpDir, err := os.MkdirTemp("", "nt-snapshot-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dbCopy := filepath.Join(tmpDir, snapshotDBEntry)
	if err := s.db.BackupTo(dbCopy); err != nil {
		return "", fmt.Errorf("copying database: %w", err)
	}

	now := s.clock.Now()
	var archive bytes.Buffer
	count, err := s.writeArchive(&archive, dbCopy, now)
	if err != nil {
		return "", err
	}

	var sealed bytes.Buffer
	if err := s.encryptor.Encrypt(&archive, &sealed); err != nil {
		return "", fmt.Errorf("encrypting snapshot: %w", err)
	}

	name := now.UTC().Format("20060102T150405Z") + snapshotSuffix
	if err := s.vault.PutSnapshot(name, &sealed, int64(sealed.Len())); err != nil {
		return "", fmt.Errorf("storing snapshot: %w", err)
	}

	s.logger.Info("snapshot stored", "name", name, "notes", count)
	return name, nil
}

// writeArchive writes a gzip'd tar holding the database copy and the note
// bodies. It returns the number of note bodies archived. Notes whose body
// file is gone are skipped.
func (s *Snapshots) writeArchive(w io.Writer, dbCopy string, modTime time.Time) (int, error) {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	dbData, err := os.ReadFile(dbCopy)
	if err != nil {
		return 0, fmt.Errorf("reading database copy: %w", err)
	}
	if err := addEntry(tw, snapshotDBEntry, dbData, modTime); err != nil {
		return 0, err
	}

	notes, err := s.db.ListNotes()
	if err != nil {
		return 0, fmt.Errorf("listing notes: %w", err)
	}

	count := 0
	for _, note := range notes {
		body, err := s.store.Read(note.ContentPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("note body missing, skipped", "id", note.ID, "path", note.ContentPath)
				continue
			}
			return 0, fmt.Errorf("reading note %s: %w", note.ID, err)
		}
		if err := addEntry(tw, path.Join(snapshotNotesDir, note.ID+".md"), body, note.UpdatedAt); err != nil {
			return 0, err
		}
		count++
	}

	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("finishing archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return 0, fmt.Errorf("finishing compression: %w", err)
	}
	return count, nil
}

func addEntry(tw *tar.Writer, name string, data []byte, modTime time.Time) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0644,
		Size:     int64(len(data)),
		ModTime:  modTime,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// List returns the names of the stored snapshots.
func (s *Snapshots) List() ([]string, error) {
	names, err := s.vault.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return names, nil
}

// Restore decrypts the named snapshot and unpacks it under destDir. Existing
// files are never overwritten. It returns the paths written.
func (s *Snapshots) Restore(name string, decryptCtx DecryptionContext, destDir string) ([]string, error) {
	s.logger.Info("restore started", "name", name, "dest", destDir)

	// Stream the vault output straight into the decryptor.
	pr, pw := io.Pipe()
	vaultErrCh := make(chan error, 1)
	go func() {
		err := s.vault.GetSnapshot(name, pw)
		pw.CloseWithError(err)
		vaultErrCh <- err
	}()

	var archive bytes.Buffer
	decryptErr := decryptCtx.Decrypt(pr, &archive)
	pr.CloseWithError(decryptErr)
	vaultErr := <-vaultErrCh

	// A vault error caused by the reader closing early is not the root cause.
	if vaultErr != nil && !errors.Is(vaultErr, io.ErrClosedPipe) && !errors.Is(vaultErr, decryptErr) {
		return nil, fmt.Errorf("retrieving snapshot %s: %w", name, vaultErr)
	}
	if decryptErr != nil {
		return nil, fmt.Errorf("decrypting snapshot: %w", decryptErr)
	}

	written, err := unpackArchive(&archive, destDir)
	if err != nil {
		return written, err
	}

	s.logger.Info("snapshot restored", "name", name, "files", len(written))
	return written, nil
}

func unpackArchive(r io.Reader, destDir string) ([]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening compressed archive: %w", err)
	}
	defer gz.Close()

	var written []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		clean := path.Clean(hdr.Name)
		if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			return written, fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}

		outPath := filepath.Join(destDir, filepath.FromSlash(clean))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return written, fmt.Errorf("creating parent directory: %w", err)
		}

		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return written, fmt.Errorf("output file already exists: %s", outPath)
			}
			return written, fmt.Errorf("creating output file: %w", err)
		}
		if _, err := io.Copy(f, tr); err != nil {
			f.Close()
			os.Remove(outPath)
			return written, fmt.Errorf("writing %s: %w", outPath, err)
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("closing %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}
	return written, nil
}
