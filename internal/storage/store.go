// Package storage persists the foodfire document.
//
// A Store reads and writes the whole document as one unit. Load never fails:
// a missing or corrupt document yields core.DefaultDocument. Save never fails
// either: write errors are logged and the caller's in-memory copy stays
// authoritative until the next successful save. Encode refuses a document
// that Decode would reject, so such a save keeps the previous document. A
// document that Load could not use is kept aside by the next Save rather
// than overwritten.
package storage

import (
	"fmt"

	"github.com/foodfireroad/foodfire/internal/core"
)

// Store is the durable home of the app document.
type Store interface {
	Load() core.Document
	Save(doc core.Document)
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and locates a backend.
type Options struct {
	Backend      string
	DocumentPath string // used by BackendFile
	DatabasePath string // used by BackendSQLite
}

// Open returns the store for opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.DocumentPath), nil
	case BackendSQLite:
		return OpenSQLite(Config{Path: opts.DatabasePath})
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownBackend, opts.Backend)
	}
}
