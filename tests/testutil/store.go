package testutil

import (
	"path/filepath"
	"testing"

	"github.com/nhle/sortbase/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestFileStore creates a JSONFileStore inside a per-test temp dir.
func NewTestFileStore(t *testing.T) *store.JSONFileStore {
	t.Helper()
	return store.NewJSONFileStore(filepath.Join(t.TempDir(), "inventory.json"))
}
