package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/logging"
)

// DocumentFileName is the default name of the JSON document
const DocumentFileName = "appdata.json"

// FileStore keeps the document in a single JSON file.
//
// When Load finds a file it cannot use, the next Save moves that file aside
// (see BackupPath) instead of overwriting it.
type FileStore struct {
	path string
	mu   sync.Mutex

	unreadable bool
}

// NewFileStore creates a store for the document at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document, falling back to the default document when the
// file is absent or cannot be decoded.
func (s *FileStore) Load() core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.WithField("path", s.path)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no document yet, starting empty")
		return core.DefaultDocument()
	}
	if err != nil {
		log.Warn("read document: %v", err)
		s.unreadable = true
		return core.DefaultDocument()
	}

	doc, err := Decode(data)
	if err != nil {
		log.Warn("discarding unreadable document: %v", err)
		s.unreadable = true
		return core.DefaultDocument()
	}
	s.unreadable = false
	return doc
}

// BackupPath is where an unreadable document found at path is kept when it
// is first replaced.
func BackupPath(path string, at time.Time) string {
	return path + "." + at.UTC().Format("20060102T150405") + ".bak"
}

// Save replaces the document atomically. Errors are logged, not returned.
func (s *FileStore) Save(doc core.Document) {
	if err := s.write(doc); err != nil {
		logging.WithField("path", s.path).Error("save document: %v", err)
	}
}

// Close is a no-op; the file is not held open between calls
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) write(doc core.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// The target is only replaced once the temp file is complete on disk.
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if s.unreadable {
		backup := BackupPath(s.path, time.Now())
		if err := os.Rename(s.path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("keep unreadable document: %w", err)
		}
		logging.WithField("path", backup).Warn("kept unreadable document")
		s.unreadable = false
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	committed = true
	return nil
}
