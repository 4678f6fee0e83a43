package store

import (
	"context"
	"fmt"

	"github.com/nhle/sortbase/internal/model"
)

// Store loads and saves the whole inventory document.
//
// Load always returns a usable document. When the stored data cannot be
// read or parsed, it returns an empty document together with an error
// describing what happened; callers treat that as a fresh start and may
// show the error as a notice. A store that does not exist yet is not an
// error.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg model.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case model.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case model.BackendJSON, "":
		return NewJSONFileStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
