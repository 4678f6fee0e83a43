package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// JSONFileStore keeps the document in a single pretty-printed JSON file.
type JSONFileStore struct {
	path string
	lock FileLock
	now  func() time.Time
}

// NewJSONFileStore returns a store for the file at path. The file and its
// directory are created on first save.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{
		path: path,
		lock: newFileLock(path + ".lock"),
		now:  time.Now,
	}
}

// Path is the data file location.
func (s *JSONFileStore) Path() string { return s.path }

// Load reads the document. A missing file yields an empty document and no
// error. An unreadable file is copied aside before the empty document is
// returned, so the next save cannot destroy it.
func (s *JSONFileStore) Load(ctx context.Context) (*Document, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return EmptyDocument(), fmt.Errorf("creating data directory: %w", err)
	}

	var data []byte
	err := withLock(ctx, s.lock, func() error {
		var err error
		data, err = os.ReadFile(s.path)
		return err
	})
	if errors.Is(err, fs.ErrNotExist) {
		return EmptyDocument(), nil
	}
	if err != nil {
		return EmptyDocument(), fmt.Errorf("reading %s: %w", s.path, err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		backup, berr := s.backup(data)
		if berr != nil {
			slog.Error("backing up unreadable data file", "path", s.path, "err", berr)
			return EmptyDocument(), fmt.Errorf("parsing %s: %w", s.path, err)
		}
		return EmptyDocument(), fmt.Errorf("parsing %s (copy kept at %s): %w", s.path, backup, err)
	}
	return doc, nil
}

// Save replaces the file with doc. The write goes to a temporary file that
// is renamed over the old one.
func (s *JSONFileStore) Save(ctx context.Context, doc *Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	return withLock(ctx, s.lock, func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", tmp, err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("replacing %s: %w", s.path, err)
		}
		return nil
	})
}

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONFileStore) Close() error { return nil }

func (s *JSONFileStore) backup(data []byte) (string, error) {
	name := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102T150405Z"))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", err
	}
	slog.Warn("data file could not be parsed, copy kept", "path", s.path, "backup", name)
	return name, nil
}
