package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/logging"
)

// SQLiteStore keeps the encoded document as the single row of the
// documents table. A body that Load could not use is copied to
// document_backups by the next Save.
type SQLiteStore struct {
	db *DB

	mu         sync.Mutex
	unreadable bool
}

// OpenSQLite opens (creating and migrating if needed) a SQLite-backed store.
func OpenSQLite(cfg Config) (*SQLiteStore, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying database
func (s *SQLiteStore) DB() *DB {
	return s.db
}

// Load reads the stored document, or the default document when there is
// none or it cannot be decoded.
func (s *SQLiteStore) Load() core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.WithField("backend", BackendSQLite)

	var body string
	err := s.db.conn.QueryRow("SELECT body FROM documents WHERE id = 1").Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no document yet, starting empty")
		return core.DefaultDocument()
	}
	if err != nil {
		log.Warn("read document: %v", err)
		s.unreadable = true
		return core.DefaultDocument()
	}

	doc, err := Decode([]byte(body))
	if err != nil {
		log.Warn("discarding unreadable document: %v", err)
		s.unreadable = true
		return core.DefaultDocument()
	}
	s.unreadable = false
	return doc
}

// Save replaces the stored document in one transaction. Errors are logged,
// not returned.
func (s *SQLiteStore) Save(doc core.Document) {
	if err := s.write(doc); err != nil {
		logging.WithField("backend", BackendSQLite).Error("save document: %v", err)
	}
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) write(doc core.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *sql.Tx) error {
		if s.unreadable {
			_, err := tx.Exec(`
				INSERT INTO document_backups (body, saved_at, backed_up_at)
				SELECT body, saved_at, ? FROM documents WHERE id = 1
			`, now)
			if err != nil {
				return fmt.Errorf("keep unreadable document: %w", err)
			}
		}
		_, err := tx.Exec(`
			INSERT INTO documents (id, body, saved_at) VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at
		`, string(data), now)
		return err
	})
	if err != nil {
		return err
	}
	if s.unreadable {
		logging.WithField("backend", BackendSQLite).Warn("kept unreadable document in document_backups")
		s.unreadable = false
	}
	return nil
}
