package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using a local SQLite database.
// The document is kept as a single row.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps in-memory databases intact across calls.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// Load reads the stored document. An unparseable row is copied to
// document_backups before the empty document is returned.
func (s *SQLiteStore) Load(ctx context.Context) (*Document, error) {
	var body string
	err := s.db.GetContext(ctx, &body, "SELECT body FROM documents WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return EmptyDocument(), nil
	}
	if err != nil {
		return EmptyDocument(), fmt.Errorf("reading document: %w", err)
	}

	doc, err := DecodeDocument([]byte(body))
	if err != nil {
		if _, berr := s.db.ExecContext(ctx,
			"INSERT INTO document_backups (body, reason) VALUES (?, ?)", body, err.Error(),
		); berr != nil {
			slog.Error("backing up unreadable document", "err", berr)
		}
		return EmptyDocument(), fmt.Errorf("parsing stored document: %w", err)
	}
	return doc, nil
}

// Save replaces the stored document.
func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO documents (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Backup is a document row set aside because it could not be parsed.
type Backup struct {
	ID        int64     `db:"id"`
	Body      string    `db:"body"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// Backups lists set-aside documents, newest first.
func (s *SQLiteStore) Backups(ctx context.Context) ([]Backup, error) {
	var out []Backup
	if err := s.db.SelectContext(ctx, &out,
		"SELECT id, body, reason, created_at FROM document_backups ORDER BY id DESC",
	); err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	return out, nil
}
